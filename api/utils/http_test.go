// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/builtin/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		revert bool
	}{
		{"ok", nil, http.StatusOK, false},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, false},
		{"forbidden", Forbidden(errors.New("nope")), http.StatusForbidden, false},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound, false},
		{"internal", errors.New("disk"), http.StatusInternalServerError, false},
		{"revert", reverts.ErrInvalidEpoch, http.StatusBadRequest, true},
		{"wrapped revert", pkgerrors.WithMessage(reverts.ErrInsufficientFunds, "execute"), http.StatusBadRequest, true},
		{"unauthorized", reverts.ErrNotWhitelisted, http.StatusForbidden, true},
		{"not owner", reverts.ErrNotOwner, http.StatusForbidden, true},
		{"missing transaction", reverts.ErrTransactionNotFound, http.StatusNotFound, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			if !tt.revert {
				return
			}
			var resp RevertResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			ve, _ := reverts.AsRevert(tt.err)
			assert.Equal(t, ve.Error(), resp.Error)
			assert.Equal(t, ve.Bytes(), []byte(resp.Data))
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Caller string `json:"caller"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"caller":"0x01"}`), &v))
	assert.Equal(t, "0x01", v.Caller)
	assert.Error(t, ParseJSON(strings.NewReader(`{"caler":"0x01"}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, map[string]int{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}
