// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/standby-warden/warden/warden"
)

type Key interface {
	Bytes() []byte
}

// Uint64Key turns an integer into a mapping key.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}

// PairKey derives the key of a nested mapping, e.g. mapping(uint => mapping(address => V)).
func PairKey(outer, inner Key) warden.Bytes32 {
	return warden.Blake2b(outer.Bytes(), inner.Bytes())
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Missing entries decode into the zero value of V; a pointer V gets a freshly allocated zero value.
type Mapping[K Key, V any] struct {
	context *Context
	basePos warden.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos warden.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) warden.Bytes32 {
	return warden.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry, so that Get returns the zero value afterwards.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
