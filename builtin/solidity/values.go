// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/warden"
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     warden.Bytes32
}

func NewUint256(context *Context, slot warden.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: slot}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// Set stores the value. Negative values or values wider than 256 bits are rejected.
func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return errors.New("uint256: negative value")
	}
	v, overflow := uint256.FromBig(value)
	if overflow {
		return errors.New("uint256: value overflows 256 bits")
	}
	u.context.state.SetStorage(u.context.address, u.pos, warden.Bytes32(v.Bytes32()))
	return nil
}

// Uint64 stores an unsigned 64-bit integer in a single slot.
type Uint64 struct {
	context *Context
	pos     warden.Bytes32
}

func NewUint64(context *Context, slot warden.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: slot}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.context.state.SetStorage(u.context.address, u.pos, warden.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()))
}

// Bool stores a flag in a single slot.
type Bool struct {
	context *Context
	pos     warden.Bytes32
}

func NewBool(context *Context, slot warden.Bytes32) *Bool {
	return &Bool{context: context, pos: slot}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage warden.Bytes32
	if value {
		storage[31] = 1
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}

// Address is a wrapper for storage and retrieval of an address. Similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     warden.Bytes32
}

func NewAddress(context *Context, pos warden.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (warden.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return warden.Address{}, err
	}
	return warden.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *warden.Address) {
	var storage warden.Bytes32
	if addr != nil {
		storage = warden.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}

// String stores a short text value.
type String struct {
	context *Context
	pos     warden.Bytes32
}

func NewString(context *Context, pos warden.Bytes32) *String {
	return &String{context: context, pos: pos}
}

func (s *String) Get() (str string, err error) {
	err = s.context.state.DecodeStorage(s.context.address, s.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &str)
	})
	return
}

func (s *String) Set(str string) error {
	return s.context.state.EncodeStorage(s.context.address, s.pos, func() ([]byte, error) {
		if str == "" {
			return nil, nil
		}
		return rlp.EncodeToBytes(str)
	})
}
