// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket namespaces keys of a shared store by prefixing them with its name.
// Buckets must not be prefixes of each other.
type Bucket string

func (b Bucket) prefixed(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewGetter scopes reads of src to the bucket.
func (b Bucket) NewGetter(src Getter) Getter { return &bucketGetter{b, src} }

// NewPutter scopes writes to dst to the bucket. dst is usually a Batch
// shared by several buckets.
func (b Bucket) NewPutter(dst Putter) Putter { return &bucketPutter{b, dst} }

// NewStore scopes every operation of src to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketGetter{b, src}, bucketPutter{b, src}, src}
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.b.prefixed(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.b.prefixed(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	dst Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.dst.Put(p.b.prefixed(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.dst.Delete(p.b.prefixed(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) NewBatch() Batch {
	batch := s.src.NewBatch()
	return &bucketBatch{bucketPutter{s.bucketGetter.b, batch}, batch}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.b
	limit := util.BytesPrefix([]byte(b)).Limit
	if len(r.Limit) > 0 {
		limit = b.prefixed(r.Limit)
	}
	it := s.src.Iterate(Range{Start: b.prefixed(r.Start), Limit: limit})
	return &bucketIterator{it, len(b)}
}

type bucketBatch struct {
	bucketPutter
	batch Batch
}

func (b *bucketBatch) Len() int     { return b.batch.Len() }
func (b *bucketBatch) Write() error { return b.batch.Write() }

// bucketIterator hides the bucket prefix from returned keys.
type bucketIterator struct {
	Iterator
	n int
}

func (it *bucketIterator) Key() []byte { return it.Iterator.Key()[it.n:] }
