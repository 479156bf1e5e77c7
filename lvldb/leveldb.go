// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb backs kv.Store with goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/standby-warden/warden/kv"
)

// minimum cache and open files budget, whatever the caller asks for
const minBudget = 16

// Options tunes a database opened with New.
type Options struct {
	// CacheSize in MB, split between the block cache and two write buffers.
	CacheSize int
	// OpenFilesCacheCapacity bounds the number of table files kept open.
	OpenFilesCacheCapacity int
	// ReadOnly opens an existing database without taking write access.
	ReadOnly bool
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheSize, minBudget)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minBudget),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
		ReadOnly:               o.ReadOnly,
		ErrorIfMissing:         o.ReadOnly,
	}
}

// LevelDB is a kv.StoreCloser. Single writes are not synced, batches are.
type LevelDB struct {
	db *leveldb.DB
}

var _ kv.StoreCloser = (*LevelDB)(nil)

// New opens the database at path, creating it unless opts.ReadOnly is set.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, opts.ReadOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %v", path)
	}
	return open(stg, opts)
}

// NewMem opens an empty database held in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db}, nil
}

func (l *LevelDB) IsNotFound(err error) bool { return errors.Is(err, leveldb.ErrNotFound) }

func (l *LevelDB) Get(key []byte) ([]byte, error) { return l.db.Get(key, nil) }

func (l *LevelDB) Has(key []byte) (bool, error) { return l.db.Has(key, nil) }

func (l *LevelDB) Put(key, val []byte) error { return l.db.Put(key, val, nil) }

func (l *LevelDB) Delete(key []byte) error { return l.db.Delete(key, nil) }

// Close releases the database. Any later call fails.
func (l *LevelDB) Close() error { return l.db.Close() }

// NewBatch returns a batch whose Write is fsynced, so a committed operation
// survives a process crash.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{db: l.db}
}

func (l *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return l.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type batch struct {
	db *leveldb.DB
	b  leveldb.Batch
}

func (b *batch) Put(key, val []byte) error {
	b.b.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

func (b *batch) Write() error {
	return b.db.Write(&b.b, &opt.WriteOptions{Sync: true})
}
