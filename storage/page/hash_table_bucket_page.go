package page

import (
	pair "github.com/notEpsilon/go-pair"
)

// DefaultBucketArraySize is the bucket capacity used when a caller does not
// need to override it. Real on-disk systems derive this from the page
// size and the key/value byte widths; since this engine's tuples are
// opaque byte blobs rather than fixed-width C structs, a reasonable
// constant capacity stands in for that derivation (spec.md §6 notes
// bucket_array_size "is derived from page size" but also drives it as an
// explicit test parameter).
const DefaultBucketArraySize = 128

// HashTableBucketPage is one leaf of an extendible hash index: a
// fixed-capacity slot array of (key, value) pairs plus occupied/readable
// bitmaps (spec.md §6 Bucket page). A slot is empty if not readable;
// occupied && !readable is a tombstone; readable implies occupied.
type HashTableBucketPage[K comparable, V comparable] struct {
	capacity  uint32
	occupied  []bool
	readable  []bool
	array     []pair.Pair[K, V]
	equalFunc func(K, K) bool
}

// NewHashTableBucketPage allocates an empty bucket of the given capacity.
// equalFunc compares two keys (the spec's "comparator"); pass nil to use
// Go's built-in == on K.
func NewHashTableBucketPage[K comparable, V comparable](capacity uint32, equalFunc func(K, K) bool) *HashTableBucketPage[K, V] {
	if capacity == 0 {
		capacity = DefaultBucketArraySize
	}
	if equalFunc == nil {
		equalFunc = func(a, b K) bool { return a == b }
	}
	return &HashTableBucketPage[K, V]{
		capacity:  capacity,
		occupied:  make([]bool, capacity),
		readable:  make([]bool, capacity),
		array:     make([]pair.Pair[K, V], capacity),
		equalFunc: equalFunc,
	}
}

func (b *HashTableBucketPage[K, V]) Capacity() uint32 { return b.capacity }

// GetValue appends every value stored under key to result and reports
// whether at least one was found.
func (b *HashTableBucketPage[K, V]) GetValue(key K, result *[]V) bool {
	found := false
	for i := uint32(0); i < b.capacity; i++ {
		if b.IsReadable(i) && b.equalFunc(key, b.array[i].First) {
			*result = append(*result, b.array[i].Second)
			found = true
		}
	}
	return found
}

// Insert adds (key, value) into the first free slot. It refuses an exact
// (key, value) duplicate and returns false if the bucket has no free slot
// (callers must check IsFull first — see spec.md §6 Insert).
func (b *HashTableBucketPage[K, V]) Insert(key K, value V) bool {
	freeSlot := int64(-1)
	for i := uint32(0); i < b.capacity; i++ {
		if b.IsReadable(i) {
			if b.equalFunc(key, b.array[i].First) && value == b.array[i].Second {
				return false
			}
		} else if freeSlot == -1 {
			freeSlot = int64(i)
		}
	}
	if freeSlot == -1 {
		return false
	}
	idx := uint32(freeSlot)
	b.SetOccupied(idx)
	b.SetReadable(idx)
	b.array[idx] = *pair.New(key, value)
	return true
}

// Remove deletes the first slot holding exactly (key, value).
func (b *HashTableBucketPage[K, V]) Remove(key K, value V) bool {
	for i := uint32(0); i < b.capacity; i++ {
		if b.IsReadable(i) && b.equalFunc(key, b.array[i].First) && value == b.array[i].Second {
			b.RemoveAt(i)
			return true
		}
	}
	return false
}

func (b *HashTableBucketPage[K, V]) KeyAt(idx uint32) K   { return b.array[idx].First }
func (b *HashTableBucketPage[K, V]) ValueAt(idx uint32) V { return b.array[idx].Second }

// RemoveAt clears the readable bit for idx, turning it into a tombstone.
func (b *HashTableBucketPage[K, V]) RemoveAt(idx uint32) {
	b.readable[idx] = false
}

func (b *HashTableBucketPage[K, V]) IsOccupied(idx uint32) bool { return b.occupied[idx] }
func (b *HashTableBucketPage[K, V]) SetOccupied(idx uint32)     { b.occupied[idx] = true }
func (b *HashTableBucketPage[K, V]) IsReadable(idx uint32) bool { return b.readable[idx] }
func (b *HashTableBucketPage[K, V]) SetReadable(idx uint32)     { b.readable[idx] = true }

func (b *HashTableBucketPage[K, V]) IsFull() bool {
	for i := uint32(0); i < b.capacity; i++ {
		if !b.IsReadable(i) {
			return false
		}
	}
	return true
}

func (b *HashTableBucketPage[K, V]) IsEmpty() bool {
	for i := uint32(0); i < b.capacity; i++ {
		if b.IsReadable(i) {
			return false
		}
	}
	return true
}

func (b *HashTableBucketPage[K, V]) NumReadable() uint32 {
	var n uint32
	for i := uint32(0); i < b.capacity; i++ {
		if b.IsReadable(i) {
			n++
		}
	}
	return n
}
