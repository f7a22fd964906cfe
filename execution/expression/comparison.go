// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"
)

type ComparisonType int

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

/**
 * Comparison represents two expressions being compared. By convention the
 * left side is a column reference, since that's the only shape the point
 * and hash index scans need to plan around.
 */
type Comparison struct {
	*AbstractExpression
	comparisonType ComparisonType
	children_left  *ColumnValue
	children_right Expression
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType, retType types.TypeID) Expression {
	return NewComparisonAsComparison(left, right, comparisonType, retType)
}

func NewComparisonAsComparison(left Expression, right Expression, comparisonType ComparisonType, retType types.TypeID) *Comparison {
	leftCol, _ := left.(*ColumnValue)
	return &Comparison{&AbstractExpression{[2]Expression{left, right}, retType}, comparisonType, leftCol, right}
}

func (c *Comparison) Evaluate(tuple *tuple.Tuple, schema *schema.Schema) types.Value {
	lhs := c.children[0].Evaluate(tuple, schema)
	rhs := c.children_right.Evaluate(tuple, schema)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) EvaluateJoin(left_tuple *tuple.Tuple, left_schema *schema.Schema, right_tuple *tuple.Tuple, right_schema *schema.Schema) types.Value {
	lhs := c.children[0].EvaluateJoin(left_tuple, left_schema, right_tuple, right_schema)
	rhs := c.children_right.EvaluateJoin(left_tuple, left_schema, right_tuple, right_schema)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) EvaluateAggregate(group_bys []*types.Value, aggregates []*types.Value) types.Value {
	lhs := c.children[0].EvaluateAggregate(group_bys, aggregates)
	rhs := c.children_right.EvaluateAggregate(group_bys, aggregates)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) bool {
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	case LessThan:
		return lhs.CompareLessThan(rhs)
	case LessThanOrEqual:
		return lhs.CompareLessThanOrEqual(rhs)
	case GreaterThan:
		return lhs.CompareGreaterThan(rhs)
	case GreaterThanOrEqual:
		return lhs.CompareGreaterThanOrEqual(rhs)
	}
	return false
}

// GetLeftSideColIdx assumes (as every current caller does) that the left
// side is a plain column reference.
func (c *Comparison) GetLeftSideColIdx() uint32 {
	return c.children_left.colIndex
}

func (c *Comparison) GetRightSideValue(tuple *tuple.Tuple, schema *schema.Schema) types.Value {
	return c.children_right.Evaluate(tuple, schema)
}

func (c *Comparison) GetComparisonType() ComparisonType {
	return c.comparisonType
}

func (c *Comparison) GetType() ExpressionType { return EXPRESSION_TYPE_COMPARISON }
