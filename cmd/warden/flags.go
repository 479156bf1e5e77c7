// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

// instance
var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "genesis YAML describing the engine, ledger and treasury setup",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "root directory holding one sub directory per genesis",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 1024,
		Usage: "state database cache size in MB",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep solo state on disk under --data-dir instead of in memory",
	}
)

// API
var (
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "host:port the REST API binds to",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Usage: "allowed CORS origins, comma separated",
	}
	apiTimeoutFlag = cli.IntFlag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "per request deadline in ms (0 disables)",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "max rows a single /logs query may return",
	}
	apiSlowQueriesThresholdFlag = cli.IntFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "warn about requests taking longer than this many ms (0 disables)",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "log every API request at startup (toggle later through admin)",
	}
)

// logging
var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "0 crit, 1 error, 2 warn, 3 info, 4 debug, 5 trace",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: "terminal",
		Usage: "terminal, json or logfmt",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "shorthand for --log-format json",
	}
)

// operations
var (
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "collect prometheus metrics and serve them on --metrics-addr",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2113",
		Usage: "host:port of the /metrics endpoint",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "serve the /admin endpoints on --admin-addr",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2114",
		Usage: "host:port of the /admin endpoints",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP host used to watch local clock drift (empty disables)",
	}
)

// export-logs
var (
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "destination file (stdout when empty)",
	}
	batchSizeFlag = cli.Uint64Flag{
		Name:  "batch-size",
		Value: 500,
		Usage: "sequence numbers read per log database query",
	}
)

var (
	apiFlags = []cli.Flag{
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		apiLogsLimitFlag,
		apiSlowQueriesThresholdFlag,
		enableAPILogsFlag,
	}
	logFlags = []cli.Flag{
		verbosityFlag,
		logFormatFlag,
		jsonLogsFlag,
	}
	opsFlags = []cli.Flag{
		enableMetricsFlag,
		metricsAddrFlag,
		enableAdminFlag,
		adminAddrFlag,
	}
)

func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
