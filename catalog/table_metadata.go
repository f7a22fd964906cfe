package catalog

import (
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/index"
	"github.com/opendb/relstore/storage/table/schema"
)

// TableMetadata is everything the catalog knows about one table: its
// schema, its heap, and the secondary indexes built over its columns.
type TableMetadata struct {
	schema  *schema.Schema
	name    string
	table   *access.TableHeap
	oid     uint32
	indexes map[int]index.Index
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema
}

func (t *TableMetadata) OID() uint32 {
	return t.oid
}

func (t *TableMetadata) Table() *access.TableHeap {
	return t.table
}

func (t *TableMetadata) Name() string {
	return t.name
}

// GetColumnNum returns the number of columns the table's schema has, so
// callers can scan for indexed columns by position.
func (t *TableMetadata) GetColumnNum() uint32 {
	return t.schema.GetColumnCount()
}

// GetIndex returns the index built over column colIndex, or nil if that
// column has no index (see column.Column.HasIndex).
func (t *TableMetadata) GetIndex(colIndex int) index.Index {
	if t.indexes == nil {
		return nil
	}
	return t.indexes[colIndex]
}

// SetIndex registers idx as the index over column colIndex. Called once
// per indexed column when the table is created.
func (t *TableMetadata) SetIndex(colIndex int, idx index.Index) {
	if t.indexes == nil {
		t.indexes = make(map[int]index.Index)
	}
	t.indexes[colIndex] = idx
}

// Indexes returns every index registered on this table, keyed by column
// index.
func (t *TableMetadata) Indexes() map[int]index.Index {
	return t.indexes
}
