// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/standby-warden/warden/admin"
	"github.com/standby-warden/warden/api"
	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/health"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/lvldb"
	"github.com/standby-warden/warden/metrics"
	"github.com/standby-warden/warden/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "warden")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Warden",
		Usage:     "Reward engine and treasury of a standby node network",
		Copyright: "2026 The Warden developers",
		Flags: joinFlags(
			[]cli.Flag{genesisFlag, dataDirFlag, cacheFlag},
			apiFlags,
			logFlags,
			opsFlags,
			[]cli.Flag{ntpServerFlag},
		),
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "run an instance over the development genesis",
				Flags: joinFlags(
					[]cli.Flag{dataDirFlag, cacheFlag, persistFlag},
					apiFlags,
					logFlags,
					opsFlags,
				),
				Action: soloAction,
			},
			{
				Name:  "inspect",
				Usage: "print engine and treasury state of an instance",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					verbosityFlag,
					logFormatFlag,
				},
				Action: inspectAction,
			},
			{
				Name:  "export-logs",
				Usage: "dump the event log of an instance as JSON lines",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					outputFlag,
					batchSizeFlag,
					verbosityFlag,
					logFormatFlag,
				},
				Action: exportLogsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(instanceDir)
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	return run(exitSignal, ctx, logLevel, gene, instanceDir, mainDB, logDB, ctx.String(ntpServerFlag.Name))
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	gene := genesis.DevGenesis()

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		logDB = openLogDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	return run(exitSignal, ctx, logLevel, gene, instanceDir, mainDB, logDB, "")
}

func run(
	exitSignal context.Context,
	ctx *cli.Context,
	logLevel *slog.LevelVar,
	gene *genesis.Genesis,
	instanceDir string,
	mainDB *lvldb.LevelDB,
	logDB *logdb.LogDB,
	ntpServer string,
) error {
	rt := initRuntime(gene, mainDB, logDB)
	nodeHealth := health.New(maxClockOffset, rt.Seq)
	nodeHealth.BootstrapStatus(true)

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.Enable()
	}

	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(rt, logDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Int(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        enableMetrics,
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		Version:              fullVersion(),
	})

	services := []*httpService{startAPIServer(ctx, handler, gene.ID())}
	var metricsURL string
	if enableMetrics {
		metricsSrv := startMetricsServer(ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler())
		metricsURL = metricsSrv.URL()
		services = append(services, metricsSrv)
	}
	var adminURL string
	if ctx.Bool(enableAdminFlag.Name) {
		adminSrv := startAdminServer(ctx.String(adminAddrFlag.Name), admin.New(logLevel, enableAPILogs, nodeHealth))
		adminURL = adminSrv.URL()
		services = append(services, adminSrv)
	}

	printStartupMessage(os.Stdout, gene, rt, instanceDir, services[0].URL(), metricsURL, adminURL)
	if ctx.Command.Name == "solo" {
		printSoloAccounts(os.Stdout)
	}

	return serve(exitSignal, ntpServer, nodeHealth, services...)
}

// serve runs the services until the exit signal or the first failure, then shuts all of them down.
func serve(exitSignal context.Context, ntpServer string, h *health.Health, services ...*httpService) error {
	g, ctx := errgroup.WithContext(exitSignal)
	for _, s := range services {
		g.Go(s.Serve)
	}
	g.Go(func() error {
		clockKeeping(ctx, ntpServer, h)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		for _, s := range services {
			s.Shutdown()
		}
		return nil
	})
	return g.Wait()
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := inspectGenesis(ctx)
	instanceDir := existingInstanceDir(ctx, gene)

	mainDB, err := lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{ReadOnly: true})
	if err != nil {
		return err
	}
	defer mainDB.Close()

	rt, err := runtime.New(mainDB, nil)
	if err != nil {
		return err
	}
	return inspect(os.Stdout, gene, rt)
}
