package index

import (
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
)

// IndexMetadata records which column of a table an index was built over
// and the single-column key schema derived from it.
type IndexMetadata struct {
	name       string
	tableName  string
	keyAttr    uint32
	keySchema  *schema.Schema
	baseSchema *schema.Schema
}

func NewIndexMetadata(name string, tableName string, baseSchema *schema.Schema, keyAttr uint32) *IndexMetadata {
	return &IndexMetadata{
		name:       name,
		tableName:  tableName,
		keyAttr:    keyAttr,
		keySchema:  schema.CopySchema(baseSchema, []uint32{keyAttr}),
		baseSchema: baseSchema,
	}
}

func (im *IndexMetadata) GetName() string             { return im.name }
func (im *IndexMetadata) GetTableName() string         { return im.tableName }
func (im *IndexMetadata) GetKeyAttr() uint32           { return im.keyAttr }
func (im *IndexMetadata) GetKeySchema() *schema.Schema { return im.keySchema }

// Index is the interface every secondary index implements: point
// insert/delete of a (key, RID) pair and an equality scan. The
// transaction parameter is untyped to avoid a storage/index <->
// storage/access import cycle (storage/access.Transaction embeds write
// records that reference indexes during abort rollback); implementations
// type-assert it back to *access.Transaction.
type Index interface {
	GetMetadata() *IndexMetadata
	InsertEntry(key *tuple.Tuple, rid page.RID, txn interface{})
	DeleteEntry(key *tuple.Tuple, rid page.RID, txn interface{})
	ScanKey(key *tuple.Tuple, txn interface{}) []page.RID
}
