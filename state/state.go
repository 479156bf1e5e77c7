// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/standby-warden/warden/kv"
	"github.com/standby-warden/warden/stackedmap"
	"github.com/standby-warden/warden/warden"
)

const (
	storageBucket = kv.Bucket("s")
	balanceBucket = kv.Bucket("b")

	defaultCacheSize = 4096
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the contract storage and native balances of all accounts.
// Changes are journaled in memory, and only reach the underlying store on Commit.
type State struct {
	store    kv.Store
	storage  kv.Store
	balances kv.Store
	cache    *lru.Cache // committed raw values, keyed by storageKey/balanceKey
	sm       *stackedmap.StackedMap[any, any]
}

// New create state object over the given store.
func New(store kv.Store) *State {
	cache, _ := lru.New(defaultCacheSize)
	s := &State{
		store:    store,
		storage:  storageBucket.NewStore(store),
		balances: balanceBucket.NewStore(store),
		cache:    cache,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New[any, any](s.cacheGetter)
}

// cacheGetter is the stackedmap.Source of the journal.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	switch k := key.(type) {
	case storageKey:
		raw, err := s.load(s.storage, k.bytes())
		if err != nil {
			return nil, false, err
		}
		s.cache.Add(key, rlp.RawValue(raw))
		return rlp.RawValue(raw), true, nil
	case balanceKey:
		raw, err := s.load(s.balances, k[:])
		if err != nil {
			return nil, false, err
		}
		bal := new(big.Int)
		if len(raw) > 0 {
			if err := rlp.DecodeBytes(raw, bal); err != nil {
				return nil, false, err
			}
		}
		s.cache.Add(key, bal)
		return bal, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) load(store kv.Store, key []byte) ([]byte, error) {
	raw, err := store.Get(key)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr warden.Address) (*big.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(v.(*big.Int)), nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr warden.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return &Error{fmt.Errorf("negative balance %v for %v", balance, addr)}
	}
	s.sm.Put(balanceKey(addr), new(big.Int).Set(balance))
	return nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr warden.Address, key warden.Bytes32) (warden.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return warden.Bytes32{}, err
	}
	if len(raw) == 0 {
		return warden.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return warden.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return warden.Blake2b(raw), nil
	}
	return warden.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr warden.Address, key, value warden.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr warden.Address, key warden.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr warden.Address, key warden.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr warden.Address, key warden.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr warden.Address, key warden.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Changes returns the number of distinct keys touched since the last commit.
func (s *State) Changes() int {
	return s.sm.Len()
}

// Commit writes all journaled changes into the underlying store in one atomic batch,
// then starts over with an empty journal. Each of extra may add its own writes
// to the batch, committed or dropped together with the state changes.
func (s *State) Commit(extra ...func(kv.Putter) error) error {
	type change struct{ key, val any }
	var changes []change
	s.sm.Each(func(k, v any) bool {
		changes = append(changes, change{k, v})
		return true
	})

	batch := s.store.NewBatch()
	storage := storageBucket.NewPutter(batch)
	balances := balanceBucket.NewPutter(batch)
	for _, c := range changes {
		switch key := c.key.(type) {
		case storageKey:
			raw := c.val.(rlp.RawValue)
			if len(raw) == 0 {
				if err := storage.Delete(key.bytes()); err != nil {
					return &Error{err}
				}
			} else if err := storage.Put(key.bytes(), raw); err != nil {
				return &Error{err}
			}
		case balanceKey:
			bal := c.val.(*big.Int)
			if bal.Sign() == 0 {
				if err := balances.Delete(key[:]); err != nil {
					return &Error{err}
				}
				continue
			}
			enc, err := rlp.EncodeToBytes(bal)
			if err != nil {
				return &Error{err}
			}
			if err := balances.Put(key[:], enc); err != nil {
				return &Error{err}
			}
		}
	}
	for _, put := range extra {
		if err := put(batch); err != nil {
			return &Error{err}
		}
	}
	if batch.Len() > 0 {
		if err := batch.Write(); err != nil {
			return &Error{err}
		}
	}
	for _, c := range changes {
		s.cache.Add(c.key, c.val)
	}
	s.reset()
	return nil
}

type (
	storageKey struct {
		addr warden.Address
		key  warden.Bytes32
	}
	balanceKey warden.Address
)

func (k storageKey) bytes() []byte {
	return append(append(make([]byte, 0, warden.AddressLength+32), k.addr[:]...), k.key[:]...)
}
