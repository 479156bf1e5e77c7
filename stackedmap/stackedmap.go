// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap is the checkpoint journal under state.State: writes land
// in the top layer, reads fall through the layers to a backing source.
package stackedmap

// Source loads a key that no layer holds.
type Source[K comparable, V any] func(key K) (value V, exist bool, err error)

// StackedMap is a stack of write layers over a Source.
type StackedMap[K comparable, V any] struct {
	src    Source[K, V]
	layers []layer[K, V]
	// owners[k] lists, ascending, the layers that wrote k
	owners map[K][]int
}

type layer[K comparable, V any] struct {
	vals  map[K]V
	order []K // first write of each key in this layer
}

// New returns a map with a single empty layer over src.
func New[K comparable, V any](src Source[K, V]) *StackedMap[K, V] {
	sm := &StackedMap[K, V]{src: src, owners: make(map[K][]int)}
	sm.Push()
	return sm
}

func (sm *StackedMap[K, V]) Depth() int { return len(sm.layers) }

// Push opens a layer and returns the depth before it, to be handed to PopTo.
func (sm *StackedMap[K, V]) Push() int {
	sm.layers = append(sm.layers, layer[K, V]{vals: make(map[K]V)})
	return len(sm.layers) - 1
}

// Pop discards the top layer and every write made in it.
func (sm *StackedMap[K, V]) Pop() {
	top := len(sm.layers) - 1
	for _, k := range sm.layers[top].order {
		owners := sm.owners[k][:len(sm.owners[k])-1]
		if len(owners) == 0 {
			delete(sm.owners, k)
		} else {
			sm.owners[k] = owners
		}
	}
	sm.layers = sm.layers[:top]
}

// PopTo pops layers until depth remain.
func (sm *StackedMap[K, V]) PopTo(depth int) {
	for len(sm.layers) > depth {
		sm.Pop()
	}
}

// Get returns the newest written value of key, or asks the source.
func (sm *StackedMap[K, V]) Get(key K) (V, bool, error) {
	if owners := sm.owners[key]; len(owners) > 0 {
		return sm.layers[owners[len(owners)-1]].vals[key], true, nil
	}
	return sm.src(key)
}

// Put writes key in the top layer. The stack must not be empty.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	i := len(sm.layers) - 1
	l := &sm.layers[i]
	if _, ok := l.vals[key]; !ok {
		l.order = append(l.order, key)
		sm.owners[key] = append(sm.owners[key], i)
	}
	l.vals[key] = value
}

// Len is the number of distinct keys written across all layers.
func (sm *StackedMap[K, V]) Len() int { return len(sm.owners) }

// Each visits every written key once with its newest value, in the order
// keys were first written. It stops when fn returns false.
func (sm *StackedMap[K, V]) Each(fn func(key K, value V) bool) {
	seen := make(map[K]struct{}, len(sm.owners))
	for _, l := range sm.layers {
		for _, k := range l.order {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			v, _, _ := sm.Get(k)
			if !fn(k, v) {
				return
			}
		}
	}
}
