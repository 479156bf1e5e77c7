// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	encoded := ErrInvalidEpoch.Bytes()
	assert.Equal(t, "08c379a0", hex.EncodeToString(encoded[:4]))
	assert.Len(t, encoded, 4+32+32+32)
	assert.Equal(t, byte(0x20), encoded[4+31])
	assert.Equal(t, byte(len("Invalid epoch")), encoded[4+32+31])
	assert.Equal(t, "Invalid epoch", string(encoded[4+64:4+64+len("Invalid epoch")]))

	var nilErr *ErrRequire
	assert.Nil(t, nilErr.Bytes())
}

func TestIsRevertErr(t *testing.T) {
	assert.True(t, IsRevertErr(ErrNotOwner))
	assert.True(t, IsRevertErr(errors.WithMessage(ErrNotOwner, "confirm")))
	assert.False(t, IsRevertErr(errors.New("disk failure")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(ErrNotWhitelisted))
	assert.True(t, IsUnauthorized(errors.Wrap(ErrNotOwner, "create")))
	assert.True(t, IsUnauthorized(ErrBuiltinCaller))
	assert.False(t, IsUnauthorized(ErrInvalidEpoch))
	assert.False(t, IsUnauthorized(errors.New("x")))
}

func TestErrorsIs(t *testing.T) {
	err := errors.WithMessage(ErrAlreadyExecuted, "tx 0")
	assert.True(t, errors.Is(err, ErrAlreadyExecuted))
	assert.False(t, errors.Is(err, ErrAlreadyConfirmed))
}
