// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/health"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/test/testchain"
)

func TestNormalizeCacheSize(t *testing.T) {
	small := normalizeCacheSize(1)
	assert.LessOrEqual(t, small, 128)
	assert.Positive(t, small)

	// never above what was asked for, once the floor is passed
	assert.LessOrEqual(t, normalizeCacheSize(512), 512)
}

func TestInstanceDirName(t *testing.T) {
	gene := genesis.DevGenesis()
	name := instanceDirName(gene)
	assert.True(t, strings.HasPrefix(name, "instance-"))
	assert.Len(t, name, len("instance-")+16)
	assert.Equal(t, name, instanceDirName(genesis.DevGenesis()), "stable across builds")
}

func TestServeShutdownOnSignal(t *testing.T) {
	svc := &httpService{
		name:     "test",
		srv:      &http.Server{Handler: http.HandlerFunc(okHandler), ReadHeaderTimeout: time.Second},
		listener: listen("test", "127.0.0.1:0"),
	}
	require.True(t, strings.HasPrefix(svc.URL(), "http://127.0.0.1:"))

	exit, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(exit, "", health.New(time.Second, nil), svc) }()

	resp, err := http.Get(svc.URL())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("services not stopped")
	}
}

func TestPrintStartupMessage(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	var buf bytes.Buffer
	printStartupMessage(&buf, chain.Genesis(), chain.Runtime(), "Memory", "http://localhost:8679/", "", "")
	out := buf.String()
	assert.Contains(t, out, chain.Genesis().ID().String())
	assert.Contains(t, out, "devnet")
	assert.Contains(t, out, "Memory")
	assert.Contains(t, out, "disabled")

	buf.Reset()
	printSoloAccounts(&buf)
	for _, acc := range genesis.DevAccounts() {
		assert.Contains(t, buf.String(), acc.Address.String())
	}
}

func TestInitLogger(t *testing.T) {
	old := log.Root()
	defer log.SetDefault(old)

	tests := []struct {
		args  []string
		level slog.Level
	}{
		{nil, slog.LevelInfo},
		{[]string{"--verbosity", "4", "--log-format", "logfmt"}, slog.LevelDebug},
		{[]string{"--verbosity", "0", "--json-logs"}, log.LevelCrit},
	}
	for _, tt := range tests {
		set := flag.NewFlagSet("warden", flag.ContinueOnError)
		for _, f := range logFlags {
			f.Apply(set)
		}
		require.NoError(t, set.Parse(tt.args))

		level := initLogger(cli.NewContext(cli.NewApp(), set, nil))
		assert.Equal(t, tt.level, level.Level(), "%v", tt.args)
	}
}
