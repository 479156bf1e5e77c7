// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/warden"
)

// AddressVar parses the address path variable name.
func AddressVar(req *http.Request, name string) (warden.Address, error) {
	addr, err := warden.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return warden.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Bytes32Var parses the 32 bytes path variable name.
func Bytes32Var(req *http.Request, name string) (warden.Bytes32, error) {
	b, err := warden.ParseBytes32(mux.Vars(req)[name])
	if err != nil {
		return warden.Bytes32{}, BadRequest(errors.WithMessage(err, name))
	}
	return b, nil
}

// Uint64Var parses the uint64 path variable name, in decimal or 0x prefixed hex.
func Uint64Var(req *http.Request, name string) (uint64, error) {
	n, err := strconv.ParseUint(mux.Vars(req)[name], 0, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}
