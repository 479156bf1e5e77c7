// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pborman/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	t.Run("assigned", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		require.NotNil(t, uuid.Parse(id))
		assert.Equal(t, id, seen)
	})

	t.Run("kept", func(t *testing.T) {
		want := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, want)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, want, seen)
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "not-an-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		id := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "not-an-id", id)
		assert.NotNil(t, uuid.Parse(id))
	})
}

func TestRequestIDLogged(t *testing.T) {
	logger := &mockLogger{}
	var enabled atomic.Bool
	enabled.Store(true)

	handler := RequestIDMiddleware(RequestLoggerMiddleware(logger, &enabled, 0)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/node/status", nil))

	assert.Contains(t, logger.loggedData, "requestId")
	assert.Contains(t, logger.loggedData, rec.Header().Get(RequestIDHeader))
}
