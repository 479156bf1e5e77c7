// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves the operator endpoints: log verbosity, API request logging and health.
package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/standby-warden/warden/health"
	"github.com/standby-warden/warden/log"
)

var logger = log.WithContext("pkg", "admin")

// New returns the admin router, mounted under /admin.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, h *health.Health) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	sub.Path("/loglevel").Methods(http.MethodGet).HandlerFunc(getLogLevelHandler(logLevel))
	sub.Path("/loglevel").Methods(http.MethodPost).HandlerFunc(postLogLevelHandler(logLevel))
	sub.Path("/apilogs").Methods(http.MethodGet).HandlerFunc(getAPILogsHandler(apiLogs))
	sub.Path("/apilogs").Methods(http.MethodPost).HandlerFunc(postAPILogsHandler(apiLogs))
	sub.Path("/health").Methods(http.MethodGet).HandlerFunc(healthHandler(h))

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return handlers.CompressHandler(router)
}
