package hash

import (
	"errors"

	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/storage/buffer"
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/types"
)

// ErrDirectoryFull is returned by SplitInsert when every bucket has already
// split as far as common.MaxDepth allows and a key still collides into a
// full bucket.
var ErrDirectoryFull = errors.New("extendible hash table: directory already at MaxDepth")

// ExtendibleHashTable is a two-level extendible hash index: one directory
// page fans out to one or more bucket pages, doubling and halving as
// buckets split and merge (spec.md §6). K/V stand in for the per-key-type
// C++ template instantiation ground truth uses; Go generics give one
// implementation for every (K, V) pair instead.
//
// Directory and bucket pages are allocated through the buffer pool so
// page ids, pin counts and eviction accounting all flow through the same
// BufferPoolManager as every other page in this engine, but their typed
// contents are kept in an in-memory cache keyed by page id rather than
// byte-marshaled into Page.Data(): K and V are arbitrary comparable types
// with no single natural wire encoding, and ground truth's reinterpret_cast
// of a raw page buffer has no safe Go equivalent once the page layout is
// generic. FetchPage/UnpinPage/NewPage/DeletePage are still the only way
// callers touch a page, so pin discipline and page-id lifecycle are real;
// only the "page is literally len(PageSize) bytes on disk" part is not.
type ExtendibleHashTable[K comparable, V comparable] struct {
	tableLatch deadlock.RWMutex

	bpm             *buffer.BufferPoolManager
	directoryPageID types.PageID
	hashFn          func(K) uint32
	equalFunc       func(K, K) bool
	bucketCapacity  uint32

	cacheLatch  deadlock.Mutex
	directories map[types.PageID]*page.HashTableDirectoryPage
	buckets     map[types.PageID]*page.HashTableBucketPage[K, V]
}

// NewExtendibleHashTable allocates a fresh, empty hash table: one directory
// page at global depth 0 pointing at one bucket page. hashFn hashes a key
// to a uint32; equalFunc compares two keys for equality (nil means use Go's
// built-in == on K).
func NewExtendibleHashTable[K comparable, V comparable](
	bpm *buffer.BufferPoolManager,
	hashFn func(K) uint32,
	equalFunc func(K, K) bool,
	bucketCapacity uint32,
) (*ExtendibleHashTable[K, V], error) {
	if equalFunc == nil {
		equalFunc = func(a, b K) bool { return a == b }
	}
	if bucketCapacity == 0 {
		bucketCapacity = page.DefaultBucketArraySize
	}

	dirPg, err := bpm.NewPage()
	if err != nil {
		return nil, err
	}
	bucketPg, err := bpm.NewPage()
	if err != nil {
		bpm.UnpinPage(dirPg.GetPageId(), false)
		return nil, err
	}

	ht := &ExtendibleHashTable[K, V]{
		bpm:             bpm,
		directoryPageID: dirPg.GetPageId(),
		hashFn:          hashFn,
		equalFunc:       equalFunc,
		bucketCapacity:  bucketCapacity,
		directories:     make(map[types.PageID]*page.HashTableDirectoryPage),
		buckets:         make(map[types.PageID]*page.HashTableBucketPage[K, V]),
	}

	dir := &page.HashTableDirectoryPage{}
	dir.SetPageId(dirPg.GetPageId())
	dir.SetBucketPageId(0, bucketPg.GetPageId())
	dir.SetLocalDepth(0, 0)

	ht.directories[dirPg.GetPageId()] = dir
	ht.buckets[bucketPg.GetPageId()] = page.NewHashTableBucketPage[K, V](bucketCapacity, equalFunc)

	ht.bpm.UnpinPage(dirPg.GetPageId(), true)
	ht.bpm.UnpinPage(bucketPg.GetPageId(), true)
	return ht, nil
}

func (ht *ExtendibleHashTable[K, V]) keyToDirectoryIndex(key K, dir *page.HashTableDirectoryPage) uint32 {
	return ht.hashFn(key) & dir.GetGlobalDepthMask()
}

// fetchDirectoryPage pins the (sole) directory page and returns its cached
// typed contents. Caller must unpin via unpinDirectory.
func (ht *ExtendibleHashTable[K, V]) fetchDirectoryPage() (*page.HashTableDirectoryPage, error) {
	if _, err := ht.bpm.FetchPage(ht.directoryPageID); err != nil {
		return nil, err
	}
	ht.cacheLatch.Lock()
	defer ht.cacheLatch.Unlock()
	dir, ok := ht.directories[ht.directoryPageID]
	if !ok {
		dir = &page.HashTableDirectoryPage{}
		dir.SetPageId(ht.directoryPageID)
		ht.directories[ht.directoryPageID] = dir
	}
	return dir, nil
}

func (ht *ExtendibleHashTable[K, V]) unpinDirectory(dirty bool) {
	ht.bpm.UnpinPage(ht.directoryPageID, dirty)
}

// fetchBucketPage pins bucketPageID and returns its cached typed contents,
// creating an empty bucket the first time a freshly allocated page id is
// seen. Caller must unpin via unpinBucket.
func (ht *ExtendibleHashTable[K, V]) fetchBucketPage(bucketPageID types.PageID) (*page.HashTableBucketPage[K, V], error) {
	if _, err := ht.bpm.FetchPage(bucketPageID); err != nil {
		return nil, err
	}
	ht.cacheLatch.Lock()
	defer ht.cacheLatch.Unlock()
	bucket, ok := ht.buckets[bucketPageID]
	if !ok {
		bucket = page.NewHashTableBucketPage[K, V](ht.bucketCapacity, ht.equalFunc)
		ht.buckets[bucketPageID] = bucket
	}
	return bucket, nil
}

func (ht *ExtendibleHashTable[K, V]) unpinBucket(bucketPageID types.PageID, dirty bool) {
	ht.bpm.UnpinPage(bucketPageID, dirty)
}

// newBucketPage allocates a fresh, empty bucket page.
func (ht *ExtendibleHashTable[K, V]) newBucketPage() (types.PageID, *page.HashTableBucketPage[K, V], error) {
	pg, err := ht.bpm.NewPage()
	if err != nil {
		return types.InvalidPageID, nil, err
	}
	ht.cacheLatch.Lock()
	bucket := page.NewHashTableBucketPage[K, V](ht.bucketCapacity, ht.equalFunc)
	ht.buckets[pg.GetPageId()] = bucket
	ht.cacheLatch.Unlock()
	return pg.GetPageId(), bucket, nil
}

// deleteBucketPage reclaims an emptied bucket page's id and drops it from
// the cache. The caller must already have unpinned it.
func (ht *ExtendibleHashTable[K, V]) deleteBucketPage(bucketPageID types.PageID) {
	ht.cacheLatch.Lock()
	delete(ht.buckets, bucketPageID)
	ht.cacheLatch.Unlock()
	ht.bpm.DeletePage(bucketPageID)
}

// GetValue returns every value stored under key.
func (ht *ExtendibleHashTable[K, V]) GetValue(key K) ([]V, error) {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()

	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		return nil, err
	}
	bucketIdx := ht.keyToDirectoryIndex(key, dir)
	bucketPageID := dir.GetBucketPageId(bucketIdx)

	bucket, err := ht.fetchBucketPage(bucketPageID)
	if err != nil {
		ht.unpinDirectory(false)
		return nil, err
	}

	result := []V{}
	bucket.GetValue(key, &result)
	ht.unpinBucket(bucketPageID, false)
	ht.unpinDirectory(false)
	return result, nil
}

// Insert adds (key, value), splitting the target bucket (and growing the
// directory if needed) when it is already full.
func (ht *ExtendibleHashTable[K, V]) Insert(key K, value V) (bool, error) {
	ht.tableLatch.RLock()
	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		ht.tableLatch.RUnlock()
		return false, err
	}
	bucketIdx := ht.keyToDirectoryIndex(key, dir)
	bucketPageID := dir.GetBucketPageId(bucketIdx)

	bucket, err := ht.fetchBucketPage(bucketPageID)
	if err != nil {
		ht.unpinDirectory(false)
		ht.tableLatch.RUnlock()
		return false, err
	}

	if !bucket.IsFull() {
		inserted := bucket.Insert(key, value)
		ht.unpinBucket(bucketPageID, inserted)
		ht.unpinDirectory(false)
		ht.tableLatch.RUnlock()
		return inserted, nil
	}

	ht.unpinBucket(bucketPageID, false)
	ht.unpinDirectory(false)
	ht.tableLatch.RUnlock()
	return ht.SplitInsert(key, value)
}

// SplitInsert takes the table write-lock and splits buckets (doubling the
// directory first if the target bucket's local depth has caught up to the
// global depth) until key no longer collides into a full bucket, then
// inserts. Matches the split loop of
// original_source/src/container/hash/extendible_hash_table.cpp.
func (ht *ExtendibleHashTable[K, V]) SplitInsert(key K, value V) (bool, error) {
	ht.tableLatch.Lock()
	defer ht.tableLatch.Unlock()

	for {
		dir, err := ht.fetchDirectoryPage()
		if err != nil {
			return false, err
		}
		bucketIdx := ht.keyToDirectoryIndex(key, dir)
		oldBucketPageID := dir.GetBucketPageId(bucketIdx)

		bucket, err := ht.fetchBucketPage(oldBucketPageID)
		if err != nil {
			ht.unpinDirectory(false)
			return false, err
		}

		if !bucket.IsFull() {
			inserted := bucket.Insert(key, value)
			ht.unpinBucket(oldBucketPageID, inserted)
			ht.unpinDirectory(false)
			return inserted, nil
		}

		if dir.GetLocalDepth(bucketIdx) == dir.GetGlobalDepth() {
			if dir.GetGlobalDepth() >= common.MaxDepth {
				ht.unpinBucket(oldBucketPageID, false)
				ht.unpinDirectory(false)
				return false, ErrDirectoryFull
			}
			oldSize := dir.Size()
			dir.IncrGlobalDepth()
			for i := uint32(0); i < oldSize; i++ {
				dir.SetBucketPageId(oldSize+i, dir.GetBucketPageId(i))
				dir.SetLocalDepth(oldSize+i, dir.GetLocalDepth(i))
			}
			bucketIdx = ht.keyToDirectoryIndex(key, dir)
		}

		newBucketPageID, newBucket, err := ht.newBucketPage()
		if err != nil {
			ht.unpinBucket(oldBucketPageID, false)
			ht.unpinDirectory(false)
			return false, err
		}

		newLocalDepth := dir.GetLocalDepth(bucketIdx) + 1
		// GetImageIndex flips the bit at (local depth - 1), so it must see
		// bucketIdx's post-split depth to land on the sibling slot that is
		// actually splitting, not the pre-split merge partner.
		dir.SetLocalDepth(bucketIdx, newLocalDepth)
		splitImageIdx := dir.GetImageIndex(bucketIdx)
		dir.SetLocalDepth(splitImageIdx, newLocalDepth)
		dir.SetBucketPageId(splitImageIdx, newBucketPageID)

		// Every directory slot that still points at the bucket being split
		// (there may be several, if its local depth was below the old
		// global depth) must bump its own local depth, and half of them —
		// those that disagree with bucketIdx on the newly-significant bit —
		// move to the new bucket.
		size := dir.Size()
		for i := uint32(0); i < size; i++ {
			if dir.GetBucketPageId(i) != oldBucketPageID {
				continue
			}
			dir.SetLocalDepth(i, newLocalDepth)
			if i&(uint32(1)<<(newLocalDepth-1)) != bucketIdx&(uint32(1)<<(newLocalDepth-1)) {
				dir.SetBucketPageId(i, newBucketPageID)
			}
		}

		for slot := uint32(0); slot < bucket.Capacity(); slot++ {
			if !bucket.IsReadable(slot) {
				continue
			}
			k := bucket.KeyAt(slot)
			v := bucket.ValueAt(slot)
			targetIdx := ht.keyToDirectoryIndex(k, dir)
			if dir.GetBucketPageId(targetIdx) == newBucketPageID {
				newBucket.Insert(k, v)
				bucket.RemoveAt(slot)
			}
		}

		ht.unpinBucket(oldBucketPageID, true)
		ht.unpinBucket(newBucketPageID, true)
		ht.unpinDirectory(true)
		// Loop again: the target bucket for key may still be full if every
		// colliding key shares the same hash bits up to MaxDepth.
	}
}

// Remove deletes (key, value) and, if that empties its bucket, attempts to
// merge it with its split image.
func (ht *ExtendibleHashTable[K, V]) Remove(key K, value V) (bool, error) {
	ht.tableLatch.RLock()
	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		ht.tableLatch.RUnlock()
		return false, err
	}
	bucketIdx := ht.keyToDirectoryIndex(key, dir)
	bucketPageID := dir.GetBucketPageId(bucketIdx)

	bucket, err := ht.fetchBucketPage(bucketPageID)
	if err != nil {
		ht.unpinDirectory(false)
		ht.tableLatch.RUnlock()
		return false, err
	}

	removed := bucket.Remove(key, value)
	empty := bucket.IsEmpty()
	ht.unpinBucket(bucketPageID, removed)
	ht.unpinDirectory(false)
	ht.tableLatch.RUnlock()

	if removed && empty {
		ht.Merge(bucketIdx)
	}
	return removed, nil
}

// Merge folds bucketIdx's (now empty) bucket into its split image when
// they share a local depth, then keeps halving the directory while
// HashTableDirectoryPage.CanShrink holds. A no-op if the bucket is not
// actually empty by the time the write lock is acquired, or has nothing
// to merge with (local depth 0). Matches
// original_source/src/container/hash/extendible_hash_table.cpp Merge.
func (ht *ExtendibleHashTable[K, V]) Merge(bucketIdx uint32) error {
	ht.tableLatch.Lock()
	defer ht.tableLatch.Unlock()

	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		return err
	}
	if bucketIdx >= dir.Size() {
		ht.unpinDirectory(false)
		return nil
	}
	bucketPageID := dir.GetBucketPageId(bucketIdx)

	bucket, err := ht.fetchBucketPage(bucketPageID)
	if err != nil {
		ht.unpinDirectory(false)
		return err
	}
	isEmpty := bucket.IsEmpty()
	ht.unpinBucket(bucketPageID, false)

	if !isEmpty || dir.GetLocalDepth(bucketIdx) == 0 {
		ht.unpinDirectory(false)
		return nil
	}

	imageIdx := dir.GetImageIndex(bucketIdx)
	imagePageID := dir.GetBucketPageId(imageIdx)
	if !dir.DoMerge(bucketIdx, imageIdx) {
		ht.unpinDirectory(false)
		return nil
	}

	// Repoint every other slot that shared the emptied bucket, same as the
	// split's fan-out, but in reverse.
	size := dir.Size()
	for i := uint32(0); i < size; i++ {
		if dir.GetBucketPageId(i) == bucketPageID {
			dir.SetBucketPageId(i, imagePageID)
			dir.DecrLocalDepth(i)
		}
	}

	ht.deleteBucketPage(bucketPageID)

	for dir.CanShrink() {
		dir.DecrGlobalDepth()
	}

	ht.unpinDirectory(true)
	return nil
}

// GetGlobalDepth returns the directory's current global depth.
func (ht *ExtendibleHashTable[K, V]) GetGlobalDepth() (uint32, error) {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()
	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		return 0, err
	}
	depth := dir.GetGlobalDepth()
	ht.unpinDirectory(false)
	return depth, nil
}

// VerifyIntegrity panics (via common.SHAssert) if the directory violates
// DR1/DR2. Intended for tests, not production call sites.
func (ht *ExtendibleHashTable[K, V]) VerifyIntegrity() error {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()
	dir, err := ht.fetchDirectoryPage()
	if err != nil {
		return err
	}
	dir.VerifyIntegrity()
	ht.unpinDirectory(false)
	return nil
}
