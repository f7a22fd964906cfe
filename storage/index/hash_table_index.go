package index

import (
	"github.com/opendb/relstore/container/hash"
	"github.com/opendb/relstore/storage/buffer"
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"
)

// HashTableIndex is a secondary index backed by an extendible hash table
// keyed on a single column's value, mirroring the teacher's
// LinearProbeHashTableIndex but built on this engine's ExtendibleHashTable
// container.
type HashTableIndex struct {
	metadata  *IndexMetadata
	container *hash.ExtendibleHashTable[types.Value, page.RID]
}

func NewHashTableIndex(metadata *IndexMetadata, bpm *buffer.BufferPoolManager) (*HashTableIndex, error) {
	equalFunc := func(a, b types.Value) bool { return a.CompareEquals(b) }
	hashFn := func(v types.Value) uint32 { return hash.HashValue(&v) }
	container, err := hash.NewExtendibleHashTable[types.Value, page.RID](bpm, hashFn, equalFunc, 0)
	if err != nil {
		return nil, err
	}
	return &HashTableIndex{metadata: metadata, container: container}, nil
}

func (idx *HashTableIndex) GetMetadata() *IndexMetadata { return idx.metadata }

func (idx *HashTableIndex) indexKey(key *tuple.Tuple) types.Value {
	return key.GetValue(idx.metadata.baseSchema, idx.metadata.keyAttr)
}

func (idx *HashTableIndex) InsertEntry(key *tuple.Tuple, rid page.RID, txn interface{}) {
	_, _ = idx.container.Insert(idx.indexKey(key), rid)
}

func (idx *HashTableIndex) DeleteEntry(key *tuple.Tuple, rid page.RID, txn interface{}) {
	_, _ = idx.container.Remove(idx.indexKey(key), rid)
}

func (idx *HashTableIndex) ScanKey(key *tuple.Tuple, txn interface{}) []page.RID {
	values, err := idx.container.GetValue(idx.indexKey(key))
	if err != nil {
		return nil
	}
	return values
}
