// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/health"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/lvldb"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

// maxClockOffset is the drift above which receipt timestamps are considered unreliable.
const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	format := log.FormatTerminal
	if name := ctx.String(logFormatFlag.Name); name != "" {
		f, err := log.ParseFormat(name)
		if err != nil {
			fatal(err)
		}
		format = f
	}
	if ctx.Bool(jsonLogsFlag.Name) {
		format = log.FormatJSON
	}
	fd := os.Stderr.Fd()
	useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"

	log.SetDefault(log.NewLogger(log.NewHandler(os.Stderr, format, level, useColor)))
	return level
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		cli.ShowAppHelp(ctx)
		fmt.Println("genesis flag not specified, use 'solo' for a development instance")
		os.Exit(1)
	}
	gene, err := genesis.Load(path)
	if err != nil {
		fatal(fmt.Sprintf("load genesis file [%v]: %v", path, err))
	}
	return gene
}

// inspectGenesis falls back to the development genesis when no file is given.
func inspectGenesis(ctx *cli.Context) *genesis.Genesis {
	if ctx.String(genesisFlag.Name) == "" {
		return genesis.DevGenesis()
	}
	return selectGenesis(ctx)
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func instanceDirName(gene *genesis.Genesis) string {
	return fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:])
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := filepath.Join(makeDataDir(ctx), instanceDirName(gene))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

// existingInstanceDir returns the instance dir of gene, failing when it was never created.
func existingInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := filepath.Join(ctx.String(dataDirFlag.Name), instanceDirName(gene))
	if _, err := os.Stat(instanceDir); err != nil {
		fatal(fmt.Sprintf("open instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dir string) *lvldb.LevelDB {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// the database cache should not count against the GC trigger
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", path, err))
	}
	return db
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openLogDB(dir string) *logdb.LogDB {
	path := filepath.Join(dir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", path, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

func initRuntime(gene *genesis.Genesis, mainDB *lvldb.LevelDB, logDB *logdb.LogDB) *runtime.Runtime {
	rt, err := runtime.New(mainDB, logDB)
	if err != nil {
		fatal("initialize runtime:", err)
	}
	fresh, err := rt.Bootstrap(context.Background(), gene.ID(), gene.Build)
	if err != nil {
		fatal("apply genesis:", err)
	}
	if !fresh {
		logger.Info("resumed from store", "genesis", gene.ID(), "seq", rt.Seq())
	}
	return rt
}

// httpService is a server bound to its listener, run by the service group.
type httpService struct {
	name     string
	srv      *http.Server
	listener net.Listener
}

func (s *httpService) URL() string {
	return "http://" + s.listener.Addr().String() + "/"
}

func (s *httpService) Serve() error {
	if err := s.srv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "%v server", s.name)
	}
	return nil
}

func (s *httpService) Shutdown() {
	logger.Info(fmt.Sprintf("stopping %v server...", s.name))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", "name", s.name, "err", err)
	}
}

func listen(name, addr string) net.Listener {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen %v addr [%v]: %v", name, addr, err))
	}
	return listener
}

func startAPIServer(ctx *cli.Context, handler http.Handler, genesisID warden.Bytes32) *httpService {
	listener := listen("API", ctx.String(apiAddrFlag.Name))

	if timeout := ctx.Int(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = handleXGenesisID(handler, genesisID)
	handler = handleXWardenVersion(handler)
	handler = requestBodyLimit(handler)

	return &httpService{
		name:     "API",
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		listener: listener,
	}
}

func startMetricsServer(addr string, handler http.Handler) *httpService {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &httpService{
		name:     "metrics",
		srv:      &http.Server{Handler: mux, ReadHeaderTimeout: time.Second},
		listener: listen("metrics", addr),
	}
}

func startAdminServer(addr string, handler http.Handler) *httpService {
	return &httpService{
		name:     "admin",
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		listener: listen("admin", addr),
	}
}

// checkClockOffset warns when the local clock drifts from the NTP server. Receipts carry local time.
func checkClockOffset(server string, h *health.Health) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	h.ClockOffset(resp.ClockOffset)

	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func clockKeeping(ctx context.Context, server string, h *health.Health) {
	if server == "" {
		return
	}
	logger.Debug("enter clock keeping")
	defer logger.Debug("leave clock keeping")

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	checkClockOffset(server, h)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkClockOffset(server, h)
		}
	}
}

func printStartupMessage(
	w io.Writer,
	gene *genesis.Genesis,
	rt *runtime.Runtime,
	dataDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	fmt.Fprintf(w, `Starting %v
    Network      [ %v %v ]
    Operations   [ #%v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		common.MakeName("Warden", fullVersion()),
		gene.ID(), gene.Name(),
		rt.Seq(),
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "disabled"
			}
			return metricsURL + "metrics"
		}(),
		func() string {
			if adminURL == "" {
				return "disabled"
			}
			return adminURL + "admin"
		}(),
	)
}

func printSoloAccounts(w io.Writer) {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			warden.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
		)
	}
	info += tableEnd + "\r\n"
	fmt.Fprint(w, info)
}
