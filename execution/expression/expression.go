// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"
)

type ExpressionType int

const (
	EXPRESSION_TYPE_COLUMN_VALUE ExpressionType = iota
	EXPRESSION_TYPE_CONSTANT_VALUE
	EXPRESSION_TYPE_COMPARISON
	EXPRESSION_TYPE_LOGICAL_OP
	EXPRESSION_TYPE_AGGREGATE_VALUE
)

/**
 * Expression interface is the base of all the expressions in the system.
 * Expressions are modeled as trees, i.e. every expression may have a variable number of children.
 */
type Expression interface {
	Evaluate(*tuple.Tuple, *schema.Schema) types.Value
	EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema, rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value
	EvaluateAggregate(groupBys []*types.Value, aggregates []*types.Value) types.Value
	GetChildAt(childIdx uint32) Expression
	GetReturnType() types.TypeID
	GetType() ExpressionType
}
