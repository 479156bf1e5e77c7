// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv is the storage abstraction the engine's state, runtime metadata
// and receipts are written through. The only production backend is lvldb.
package kv

// Getter reads single keys. A missing key is reported as an error that
// IsNotFound recognises.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes single keys.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch collects writes that become visible together on Write, or not at all.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Iterator walks keys in ascending byte order. Release must be called when done.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range selects keys k with Start <= k < Limit. An empty Limit means no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

type Store interface {
	Getter
	Putter
	NewBatch() Batch
	Iterate(r Range) Iterator
}

type StoreCloser interface {
	Store
	Close() error
}
