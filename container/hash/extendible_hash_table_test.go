package hash

import (
	"testing"

	"github.com/opendb/relstore/storage/buffer"
	"github.com/opendb/relstore/storage/disk"
	testingutils "github.com/opendb/relstore/testing/testing_assert"
)

func newTestHashTable(t *testing.T, bucketCapacity uint32) *ExtendibleHashTable[uint32, uint32] {
	t.Helper()
	dm := disk.NewDiskManagerImpl("ext_hash_test.db")
	t.Cleanup(dm.ShutDown)
	bpm := buffer.NewBufferPoolManager(64, dm, 1, 0)

	identity := func(key uint32) uint32 { return key }
	ht, err := NewExtendibleHashTable[uint32, uint32](bpm, identity, nil, bucketCapacity)
	testingutils.Ok(t, err)
	return ht
}

func TestInsertThenGetValue(t *testing.T) {
	ht := newTestHashTable(t, 4)

	ok, err := ht.Insert(10, 100)
	testingutils.Ok(t, err)
	testingutils.Assert(t, ok, "expected first insert to succeed")

	values, err := ht.GetValue(10)
	testingutils.Ok(t, err)
	testingutils.Equals(t, 1, len(values))
	testingutils.Equals(t, uint32(100), values[0])
}

// Matches spec.md's literal "Extendible hash split" scenario: four keys
// whose hashes all land in bucket 0 at global=local=0 with a 4-slot
// bucket, then a fifth key whose hash's low bit differs. The fifth insert
// must split: global depth becomes 1, the original four keys stay in
// bucket 0, the fifth lands alone in bucket 1, and both buckets' local
// depth becomes 1.
func TestSplitOnFullBucket(t *testing.T) {
	ht := newTestHashTable(t, 4)

	evenKeys := []uint32{0b0000, 0b0010, 0b0100, 0b0110}
	for _, k := range evenKeys {
		ok, err := ht.Insert(k, k)
		testingutils.Ok(t, err)
		testingutils.Assert(t, ok, "expected insert of key %b to succeed", k)
	}

	oddKey := uint32(0b0001)
	ok, err := ht.Insert(oddKey, oddKey)
	testingutils.Ok(t, err)
	testingutils.Assert(t, ok, "expected split-insert of key %b to succeed", oddKey)

	globalDepth, err := ht.GetGlobalDepth()
	testingutils.Ok(t, err)
	testingutils.Equals(t, uint32(1), globalDepth)

	dir, err := ht.fetchDirectoryPage()
	testingutils.Ok(t, err)
	testingutils.Equals(t, uint32(1), dir.GetLocalDepth(0))
	testingutils.Equals(t, uint32(1), dir.GetLocalDepth(1))
	bucket0ID := dir.GetBucketPageId(0)
	bucket1ID := dir.GetBucketPageId(1)
	testingutils.Assert(t, bucket0ID != bucket1ID, "expected bucket 0 and bucket 1 to be distinct pages after split")
	ht.unpinDirectory(false)

	for _, k := range evenKeys {
		values, err := ht.GetValue(k)
		testingutils.Ok(t, err)
		testingutils.Equals(t, 1, len(values))
	}
	oddValues, err := ht.GetValue(oddKey)
	testingutils.Ok(t, err)
	testingutils.Equals(t, 1, len(oddValues))

	testingutils.Ok(t, ht.VerifyIntegrity())
}

func TestRemoveThenMergeShrinksDirectory(t *testing.T) {
	ht := newTestHashTable(t, 4)

	evenKeys := []uint32{0b0000, 0b0010, 0b0100, 0b0110}
	for _, k := range evenKeys {
		_, err := ht.Insert(k, k)
		testingutils.Ok(t, err)
	}
	oddKey := uint32(0b0001)
	_, err := ht.Insert(oddKey, oddKey)
	testingutils.Ok(t, err)

	globalDepth, err := ht.GetGlobalDepth()
	testingutils.Ok(t, err)
	testingutils.Equals(t, uint32(1), globalDepth)

	removed, err := ht.Remove(oddKey, oddKey)
	testingutils.Ok(t, err)
	testingutils.Assert(t, removed, "expected remove of the sole bucket-1 key to succeed")

	globalDepth, err = ht.GetGlobalDepth()
	testingutils.Ok(t, err)
	testingutils.Equals(t, uint32(0), globalDepth)

	values, err := ht.GetValue(evenKeys[0])
	testingutils.Ok(t, err)
	testingutils.Equals(t, 1, len(values))
}
