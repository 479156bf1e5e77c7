// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/log"
)

var logger = log.WithContext("pkg", "api")

const JSONContentType = "application/json; charset=utf-8"

// statusError pins the http status an error is responded with.
type statusError struct {
	error
	status int
}

func (e *statusError) Unwrap() error { return e.error }

func withStatus(status int) func(error) error {
	return func(cause error) error { return &statusError{cause, status} }
}

var (
	// BadRequest marks a malformed request, responded 400.
	BadRequest = withStatus(http.StatusBadRequest)
	// Forbidden is responded 403.
	Forbidden = withStatus(http.StatusForbidden)
	// NotFound is responded 404.
	NotFound = withStatus(http.StatusNotFound)
)

// RevertResponse is the body of a request whose operation reverted.
type RevertResponse struct {
	Error string        `json:"error"`
	Data  hexutil.Bytes `json:"data"`
}

func revertStatus(re *reverts.ErrRequire) int {
	switch {
	case reverts.IsUnauthorized(re):
		return http.StatusForbidden
	case re == reverts.ErrTransactionNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// HandlerFunc is an http handler that fails by returning an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc responds the error f returns: reverts as RevertResponse,
// errors built with BadRequest, Forbidden or NotFound as plain text with
// their status, anything else as 500.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		if re, ok := reverts.AsRevert(err); ok {
			w.Header().Set("Content-Type", JSONContentType)
			w.WriteHeader(revertStatus(re))
			_ = json.NewEncoder(w).Encode(&RevertResponse{Error: re.Error(), Data: re.Bytes()})
			return
		}
		var se *statusError
		if errors.As(err, &se) {
			http.Error(w, se.Error(), se.status)
			return
		}
		logger.Debug("request failed", "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ParseJSON decodes a request body, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(v)
}
