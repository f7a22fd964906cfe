package column

import (
	"github.com/opendb/relstore/types"
)

// Column describes one attribute of a table or index schema: its name,
// type, and where it lives inside a serialized tuple.
type Column struct {
	columnName     string
	columnType     types.TypeID
	fixedLength    uint32 // for a non-inlined column, the size of a pointer; otherwise the fixed column size plus its null-flag byte
	variableLength uint32 // for an inlined column, 0; otherwise the length of the variable-length payload
	columnOffset   uint32 // column offset in the tuple
	hasIndex       bool   // whether the column has index data
	isLeft         bool   // when the schema is a join's temporal schema, which side this column came from
	expr           interface{}
}

// NewColumn builds a column descriptor. expr is optional: executors that
// derive a column's values from an expression (aggregates, projections)
// pass it here and retrieve it later with GetExpr; every other caller
// omits it.
func NewColumn(name string, columnType types.TypeID, hasIndex bool, expr ...interface{}) *Column {
	var e interface{}
	if len(expr) > 0 {
		e = expr[0]
	}
	if columnType != types.Varchar {
		return &Column{name, columnType, columnType.Size() + 1, 0, 0, hasIndex, true, e}
	}

	return &Column{name, types.Varchar, 4, 255, 0, hasIndex, true, e}
}

// GetExpr returns the expression this column was derived from, or nil for
// a plain table column.
func (c *Column) GetExpr() interface{} { return c.expr }

func (c *Column) IsInlined() bool {
	return c.columnType != types.Varchar
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) SetFixedLength(fixedLength uint32) {
	c.fixedLength = fixedLength
}

func (c *Column) VariableLength() uint32 {
	return c.variableLength
}

func (c *Column) SetVariableLength(variableLength uint32) {
	c.variableLength = variableLength
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

func (c *Column) HasIndex() bool {
	return c.hasIndex
}

func (c *Column) SetHasIndex(hasIndex bool) {
	c.hasIndex = hasIndex
}

func (c *Column) IsLeft() bool {
	return c.isLeft
}

func (c *Column) SetIsLeft(isLeft bool) {
	c.isLeft = isLeft
}
