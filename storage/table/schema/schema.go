package schema

import (
	"math"

	"github.com/opendb/relstore/storage/table/column"
)

// Schema is the ordered set of columns making up a tuple or index key.
type Schema struct {
	length           uint32           // fixed-length column size: bytes used by one tuple's inlined columns
	columns          []*column.Column // all columns, inlined and uninlined
	tupleIsInlined   bool             // true if every column is inlined
	uninlinedColumns []uint32         // indices of the uninlined columns
}

func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}
	schema.tupleIsInlined = true

	var currentOffset uint32
	currentOffset = 0
	for i := uint32(0); i < uint32(len(columns)); i++ {
		col := columns[i]

		if !col.IsInlined() {
			schema.tupleIsInlined = false
			schema.uninlinedColumns = append(schema.uninlinedColumns, i)
		}

		col.SetOffset(currentOffset)
		currentOffset += col.FixedLength()

		schema.columns = append(schema.columns, col)
	}
	schema.length = currentOffset
	return schema
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetUnlinedColumns() []uint32 {
	return s.uninlinedColumns
}

func (s *Schema) IsInlined() bool {
	return s.tupleIsInlined
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) Length() uint32 {
	return s.length
}

func (s *Schema) GetColIndex(columnName string) uint32 {
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i
		}
	}

	return math.MaxUint32
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

func (s *Schema) IsHaveColumn(columnName *string) bool {
	for _, col := range s.columns {
		if col.GetColumnName() == *columnName {
			return true
		}
	}
	return false
}

// CopySchema builds the key schema for an index: a new Schema containing
// only the columns named by attrs, copied out of from so the index's
// column offsets don't alias the base table's.
func CopySchema(from *Schema, attrs []uint32) *Schema {
	cols := make([]*column.Column, 0, len(attrs))
	for _, attr := range attrs {
		colCopy := *from.columns[attr]
		cols = append(cols, &colCopy)
	}
	return NewSchema(cols)
}
