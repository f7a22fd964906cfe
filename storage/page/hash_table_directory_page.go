package page

import (
	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/types"
)

// DirectoryArraySize bounds how many bucket slots a directory page can
// address: 2^MaxDepth entries fit in one page alongside the global-depth
// header and the per-bucket local-depth bytes (spec.md §6).
const DirectoryArraySize = 1 << common.MaxDepth

// HashTableDirectoryPage is the root of an extendible hash index: a
// global depth, one local depth per logical bucket slot, and the page id
// of the bucket page each slot currently points to. Two directory slots
// may point at the same bucket page when that bucket's local depth is
// less than the global depth.
type HashTableDirectoryPage struct {
	pageID        types.PageID
	lsn           types.LSN
	globalDepth   uint32
	localDepths   [DirectoryArraySize]uint8
	bucketPageIDs [DirectoryArraySize]types.PageID
}

func (d *HashTableDirectoryPage) GetPageId() types.PageID     { return d.pageID }
func (d *HashTableDirectoryPage) SetPageId(id types.PageID)   { d.pageID = id }
func (d *HashTableDirectoryPage) GetLSN() types.LSN           { return d.lsn }
func (d *HashTableDirectoryPage) SetLSN(lsn types.LSN)        { d.lsn = lsn }

func (d *HashTableDirectoryPage) GetGlobalDepth() uint32 { return d.globalDepth }

// GetGlobalDepthMask returns (1<<globalDepth)-1, used to map a key's hash
// onto a directory index (spec.md §6 key_to_bucket_index).
func (d *HashTableDirectoryPage) GetGlobalDepthMask() uint32 {
	return (uint32(1) << d.globalDepth) - 1
}

// Size is the number of directory slots currently in use: 2^globalDepth.
func (d *HashTableDirectoryPage) Size() uint32 {
	return uint32(1) << d.globalDepth
}

// IncrGlobalDepth doubles the directory. Callers must fan out the first
// half's bucket ids/local depths into the new second half themselves
// (ExtendibleHashTable.SplitInsert does this right after calling
// IncrGlobalDepth; see container/hash for the exact sequencing), matching
// ground truth's loop over dir_page->Size()/2 immediately after the incr.
func (d *HashTableDirectoryPage) IncrGlobalDepth() {
	common.SHAssert(d.globalDepth < common.MaxDepth, "directory already at MaxDepth")
	d.globalDepth++
}

func (d *HashTableDirectoryPage) DecrGlobalDepth() {
	common.SHAssert(d.globalDepth > 0, "cannot decrement global depth below zero")
	d.globalDepth--
}

func (d *HashTableDirectoryPage) GetBucketPageId(bucketIdx uint32) types.PageID {
	return d.bucketPageIDs[bucketIdx]
}

func (d *HashTableDirectoryPage) SetBucketPageId(bucketIdx uint32, pageID types.PageID) {
	d.bucketPageIDs[bucketIdx] = pageID
}

// GetImageIndex returns the split image of bucketIdx: the directory slot
// whose bucket would be this one's merge partner if its local depth
// decreased by one (spec.md GLOSSARY "Split image").
func (d *HashTableDirectoryPage) GetImageIndex(bucketIdx uint32) uint32 {
	localDepth := d.GetLocalDepth(bucketIdx)
	if localDepth == 0 {
		return bucketIdx
	}
	return bucketIdx ^ (uint32(1) << (localDepth - 1))
}

func (d *HashTableDirectoryPage) GetLocalDepth(bucketIdx uint32) uint32 {
	return uint32(d.localDepths[bucketIdx])
}

func (d *HashTableDirectoryPage) SetLocalDepth(bucketIdx uint32, depth uint32) {
	d.localDepths[bucketIdx] = uint8(depth)
}

func (d *HashTableDirectoryPage) IncrLocalDepth(bucketIdx uint32) {
	common.SHAssert(d.localDepths[bucketIdx] < uint8(d.globalDepth), "local depth cannot exceed global depth")
	d.localDepths[bucketIdx]++
}

func (d *HashTableDirectoryPage) DecrLocalDepth(bucketIdx uint32) {
	common.SHAssert(d.localDepths[bucketIdx] > 0, "local depth cannot go below zero")
	d.localDepths[bucketIdx]--
}

// CanShrink reports whether every bucket's local depth is strictly less
// than the global depth, i.e. the directory can be halved without losing
// any distinct bucket assignment (spec.md §6 invariant DR2).
func (d *HashTableDirectoryPage) CanShrink() bool {
	if d.globalDepth == 0 {
		return false
	}
	size := d.Size()
	for i := uint32(0); i < size; i++ {
		if d.GetLocalDepth(i) == d.globalDepth {
			return false
		}
	}
	return true
}

// DoMerge points bucketIdx at imageIdx's bucket page and decrements both
// local depths, iff they currently share the same local depth (the only
// case in which merging keeps the directory internally consistent).
// Returns false (and changes nothing) otherwise.
func (d *HashTableDirectoryPage) DoMerge(bucketIdx, imageIdx uint32) bool {
	if bucketIdx == imageIdx {
		return false
	}
	if d.GetLocalDepth(bucketIdx) != d.GetLocalDepth(imageIdx) {
		return false
	}
	if d.GetLocalDepth(bucketIdx) == 0 {
		return false
	}
	d.SetBucketPageId(bucketIdx, d.GetBucketPageId(imageIdx))
	d.DecrLocalDepth(bucketIdx)
	d.DecrLocalDepth(imageIdx)
	return true
}

// VerifyIntegrity panics (via SHAssert) if the directory violates either
// invariant: every bucket's local depth is <= global depth (DR1), and a
// page id shared by two slots implies they have the same local depth.
func (d *HashTableDirectoryPage) VerifyIntegrity() {
	seen := make(map[types.PageID]uint32)
	size := d.Size()
	for i := uint32(0); i < size; i++ {
		depth := d.GetLocalDepth(i)
		common.SHAssertf(depth <= d.globalDepth, "bucket %d local depth %d exceeds global depth %d", i, depth, d.globalDepth)

		pid := d.GetBucketPageId(i)
		if prevDepth, ok := seen[pid]; ok {
			common.SHAssertf(prevDepth == depth, "bucket page %d shared by slots with differing local depth", pid)
		} else {
			seen[pid] = depth
		}
	}
}
