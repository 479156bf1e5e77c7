// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/standby-warden/warden/api/accounts"
	"github.com/standby-warden/warden/api/events"
	"github.com/standby-warden/warden/api/ledger"
	"github.com/standby-warden/warden/api/middleware"
	"github.com/standby-warden/warden/api/node"
	"github.com/standby-warden/warden/api/rewards"
	"github.com/standby-warden/warden/api/transfers"
	"github.com/standby-warden/warden/api/treasury"
	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/metrics"
	"github.com/standby-warden/warden/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
	Version              string
}

// New return api router
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	genesisID, err := rt.GenesisID()
	if err != nil {
		logger.Warn("runtime has no genesis, signed requests bind to the zero id", "err", err)
	}
	auth := utils.NewAuthenticator(genesisID)

	router := mux.NewRouter()

	router.Path("/").HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/node/status", http.StatusTemporaryRedirect)
		})

	accounts.New(rt, auth).
		Mount(router, "/accounts")
	ledger.New(rt, auth).
		Mount(router, "/ledger")
	rewards.New(rt, auth).
		Mount(router, "/rewards")
	treasury.New(rt, auth).
		Mount(router, "/treasury")
	node.New(rt, opts.Version).
		Mount(router, "/node")
	if logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/logs/event")
		transfers.New(logDB, opts.LogsLimit).
			Mount(router, "/logs/transfer")
	}

	if opts.EnableMetrics {
		router.Path("/metrics").Methods(http.MethodGet).Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id", utils.SignatureHeader, utils.TimestampHeader, middleware.RequestIDHeader}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.ExposedHeaders([]string{"x-genesis-id", "x-warden-ver", middleware.RequestIDHeader}),
	)(handler)

	return handler.ServeHTTP
}
