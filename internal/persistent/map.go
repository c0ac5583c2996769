// Package persistent provides immutable, structurally shared collections.
package persistent

import (
	"hash/maphash"
	"math/bits"
)

// Persistent Hash Array Mapped Trie (HAMT).
// Every update copies only the path from the root to the touched entry,
// so older versions of a map stay valid and share the rest of the trie.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

var seed = maphash.MakeSeed()

// Map is an immutable hash map. The zero value is an empty map.
type Map[K comparable, V any] struct {
	root  *node[K, V]
	count int
}

type node[K comparable, V any] struct {
	bitmap uint32 // which slots are populated
	slots  []any  // entry[K, V] or *node[K, V]
}

type entry[K comparable, V any] struct {
	hash  uint32
	key   K
	value V
}

// Empty returns an empty map.
func Empty[K comparable, V any]() Map[K, V] {
	return Map[K, V]{}
}

// From builds a map from a Go map.
func From[K comparable, V any](m map[K]V) Map[K, V] {
	out := Empty[K, V]()
	for k, v := range m {
		out = out.Put(k, v)
	}
	return out
}

func hashKey[K comparable](key K) uint32 {
	h := maphash.Comparable(seed, key)
	return uint32(h ^ (h >> 32))
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return m.count
}

// Get returns the value stored for key.
func (m Map[K, V]) Get(key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(hashKey(key), key, 0)
}

// Contains reports whether key is present.
func (m Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put returns a new map with key bound to value. m is unchanged.
func (m Map[K, V]) Put(key K, value V) Map[K, V] {
	root := m.root
	if root == nil {
		root = &node[K, V]{}
	}
	newRoot, added := root.put(hashKey(key), key, value, 0)
	count := m.count
	if added {
		count++
	}
	return Map[K, V]{root: newRoot, count: count}
}

// Remove returns a new map without key. m is unchanged.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	if m.root == nil {
		return m
	}
	newRoot, removed := m.root.remove(hashKey(key), key, 0)
	if !removed {
		return m
	}
	return Map[K, V]{root: newRoot, count: m.count - 1}
}

// Keys returns all keys in trie order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.count)
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Range calls fn for every entry until fn returns false.
func (m Map[K, V]) Range(fn func(K, V) bool) {
	if m.root != nil {
		m.root.walk(fn)
	}
}

// Merge returns a new map with entries from other added (other wins on conflict).
func (m Map[K, V]) Merge(other Map[K, V]) Map[K, V] {
	result := m
	other.Range(func(k K, v V) bool {
		result = result.Put(k, v)
		return true
	})
	return result
}

func (n *node[K, V]) clone() *node[K, V] {
	c := &node[K, V]{bitmap: n.bitmap, slots: make([]any, len(n.slots))}
	copy(c.slots, n.slots)
	return c
}

func (n *node[K, V]) get(hash uint32, key K, shift uint) (V, bool) {
	if shift >= 32 {
		// Collision bucket
		for _, s := range n.slots {
			if e, ok := s.(entry[K, V]); ok && e.key == key {
				return e.value, true
			}
		}
		var zero V
		return zero, false
	}

	bit := uint32(1) << ((hash >> shift) & hamtMask)
	if n.bitmap&bit == 0 {
		var zero V
		return zero, false
	}

	switch v := n.slots[bits.OnesCount32(n.bitmap&(bit-1))].(type) {
	case entry[K, V]:
		if v.hash == hash && v.key == key {
			return v.value, true
		}
	case *node[K, V]:
		return v.get(hash, key, shift+hamtBits)
	}
	var zero V
	return zero, false
}

func (n *node[K, V]) put(hash uint32, key K, value V, shift uint) (*node[K, V], bool) {
	if shift >= 32 {
		c := n.clone()
		for i, s := range c.slots {
			if e, ok := s.(entry[K, V]); ok && e.key == key {
				c.slots[i] = entry[K, V]{hash: hash, key: key, value: value}
				return c, false
			}
		}
		c.slots = append(c.slots, entry[K, V]{hash: hash, key: key, value: value})
		return c, true
	}

	bit := uint32(1) << ((hash >> shift) & hamtMask)
	c := n.clone()

	if n.bitmap&bit == 0 {
		c.bitmap |= bit
		pos := bits.OnesCount32(c.bitmap & (bit - 1))
		c.slots = append(c.slots, nil)
		copy(c.slots[pos+1:], c.slots[pos:])
		c.slots[pos] = entry[K, V]{hash: hash, key: key, value: value}
		return c, true
	}

	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	switch v := c.slots[pos].(type) {
	case entry[K, V]:
		if v.hash == hash && v.key == key {
			c.slots[pos] = entry[K, V]{hash: hash, key: key, value: value}
			return c, false
		}
		// Push both entries one level down.
		child := &node[K, V]{}
		child, _ = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, added := child.put(hash, key, value, shift+hamtBits)
		c.slots[pos] = child
		return c, added
	case *node[K, V]:
		child, added := v.put(hash, key, value, shift+hamtBits)
		c.slots[pos] = child
		return c, added
	}
	return c, false
}

func (n *node[K, V]) remove(hash uint32, key K, shift uint) (*node[K, V], bool) {
	if shift >= 32 {
		for i, s := range n.slots {
			if e, ok := s.(entry[K, V]); ok && e.key == key {
				c := &node[K, V]{bitmap: n.bitmap, slots: make([]any, 0, len(n.slots)-1)}
				c.slots = append(c.slots, n.slots[:i]...)
				c.slots = append(c.slots, n.slots[i+1:]...)
				return c, true
			}
		}
		return n, false
	}

	bit := uint32(1) << ((hash >> shift) & hamtMask)
	if n.bitmap&bit == 0 {
		return n, false
	}

	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	switch v := n.slots[pos].(type) {
	case entry[K, V]:
		if v.hash != hash || v.key != key {
			return n, false
		}
		return n.without(pos, bit), true
	case *node[K, V]:
		child, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}
		if len(child.slots) == 0 {
			return n.without(pos, bit), true
		}
		c := n.clone()
		// A child left holding one entry collapses into this level.
		if e, ok := child.slots[0].(entry[K, V]); ok && len(child.slots) == 1 {
			c.slots[pos] = e
		} else {
			c.slots[pos] = child
		}
		return c, true
	}
	return n, false
}

func (n *node[K, V]) without(pos int, bit uint32) *node[K, V] {
	c := &node[K, V]{bitmap: n.bitmap &^ bit, slots: make([]any, 0, len(n.slots)-1)}
	c.slots = append(c.slots, n.slots[:pos]...)
	c.slots = append(c.slots, n.slots[pos+1:]...)
	return c
}

func (n *node[K, V]) walk(fn func(K, V) bool) bool {
	for _, s := range n.slots {
		switch v := s.(type) {
		case entry[K, V]:
			if !fn(v.key, v.value) {
				return false
			}
		case *node[K, V]:
			if !v.walk(fn) {
				return false
			}
		}
	}
	return true
}
