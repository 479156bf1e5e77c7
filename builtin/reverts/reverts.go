// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the failed-require errors of the native contracts.
// An operation failing with one of them is rolled back as a whole and the
// caller sees the message, the way a reverted contract call would.
package reverts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// errorSelector is the 4 byte selector of Error(string).
var errorSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// ErrRequire is a failed require with its reason.
type ErrRequire struct {
	message string
}

func NewRequireError(message string) *ErrRequire {
	return &ErrRequire{message}
}

func (e *ErrRequire) Error() string { return e.message }

// Bytes returns the reason ABI encoded as Error(string), as clients of a
// reverted call expect it.
func (e *ErrRequire) Bytes() []byte {
	if e == nil {
		return nil
	}
	msg := []byte(e.message)
	padded := (len(msg) + 31) / 32 * 32

	out := make([]byte, 0, len(errorSelector)+64+padded)
	out = append(out, errorSelector...)
	out = append(out, common.LeftPadBytes(big.NewInt(32).Bytes(), 32)...)
	out = append(out, common.LeftPadBytes(big.NewInt(int64(len(msg))).Bytes(), 32)...)
	return append(out, common.RightPadBytes(msg, padded)...)
}

// AsRevert unwraps the revert carried by err, if any.
func AsRevert(err error) (*ErrRequire, bool) {
	var re *ErrRequire
	if errors.As(err, &re) && re != nil {
		return re, true
	}
	return nil, false
}

// IsRevertErr reports whether v is an error carrying a revert. It accepts
// recover() results as well.
func IsRevertErr(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	_, ok = AsRevert(err)
	return ok
}
