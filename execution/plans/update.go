package plans

import (
	"github.com/opendb/relstore/execution/expression"
	"github.com/opendb/relstore/types"
)

/**
 * UpdatePlanNode identifies a table and conditions specify record to be updated.
 */
type UpdatePlanNode struct {
	*AbstractPlanNode
	rawValues       []types.Value
	update_col_idxs []int
	predicate       expression.Expression
	tableOID        uint32
}

func NewUpdatePlanNode(child Plan, rawValues []types.Value, update_col_idxs []int, predicate expression.Expression, oid uint32) Plan {
	return &UpdatePlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, rawValues, update_col_idxs, predicate, oid}
}

func (p *UpdatePlanNode) GetTableOID() uint32 {
	return p.tableOID
}

func (p *UpdatePlanNode) GetPredicate() expression.Expression {
	return p.predicate
}

func (p *UpdatePlanNode) GetType() PlanType {
	return Update
}

// GetRawValues returns the raw values to be overwrite data
func (p *UpdatePlanNode) GetRawValues() []types.Value {
	return p.rawValues
}

func (p *UpdatePlanNode) GetUpdateColIdxs() []int {
	return p.update_col_idxs
}
