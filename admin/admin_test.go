// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/health"
)

type fixture struct {
	logLevel slog.LevelVar
	apiLogs  atomic.Bool
	health   *health.Health
	handler  http.Handler
}

func newFixture() *fixture {
	f := &fixture{health: health.New(time.Second, func() uint64 { return 3 })}
	f.logLevel.Set(slog.LevelInfo)
	f.handler = New(&f.logLevel, &f.apiLogs, f.health)
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestLogLevel(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/admin/loglevel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res logLevelResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "info", res.CurrentLevel)

	tests := []struct {
		body   string
		status int
		level  slog.Level
	}{
		{`{"level":"debug"}`, http.StatusOK, slog.LevelDebug},
		{`{"level":"crit"}`, http.StatusOK, slog.Level(12)},
		{`{"level":"invalid_body"}`, http.StatusBadRequest, slog.Level(12)},
		{`not json`, http.StatusBadRequest, slog.Level(12)},
		{`{"level":"trace"}`, http.StatusOK, slog.Level(-8)},
	}
	for _, tt := range tests {
		rec := f.do(http.MethodPost, "/admin/loglevel", tt.body)
		assert.Equal(t, tt.status, rec.Code, tt.body)
		assert.Equal(t, tt.level, f.logLevel.Level(), tt.body)
		if tt.status != http.StatusOK {
			var errRes errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errRes))
			assert.Equal(t, tt.status, errRes.ErrorCode)
		}
	}

	rec = f.do(http.MethodDelete, "/admin/loglevel", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAPILogs(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/admin/apilogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":false}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
	assert.True(t, f.apiLogs.Load())

	rec = f.do(http.MethodPost, "/admin/apilogs", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, f.apiLogs.Load())
}

func TestHealth(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/admin/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f.health.BootstrapStatus(true)
	rec = f.do(http.MethodGet, "/admin/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status health.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(3), status.Seq)

	f.health.ClockOffset(time.Minute)
	rec = f.do(http.MethodGet, "/admin/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
