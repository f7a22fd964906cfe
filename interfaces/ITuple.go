package interfaces

import (
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/types"
)

type ITuple interface {
	// GetValue returns the value of the column at colIndex under schema
	GetValue(schema *ISchema, colIndex uint32) types.Value
	Size() uint32
	Data() []byte
	GetRID() *page.RID
	Copy(offset uint32, data []byte)
}
