package plans

import "github.com/opendb/relstore/execution/expression"

// do filtering according to WHERE clause for Plan(Executor) which has no filtering feature

type FilterPlanNode struct {
	*AbstractPlanNode
	predicate expression.Expression
}

func NewFilterPlanNode(child Plan, predicate expression.Expression) Plan {
	childOutSchema := child.OutputSchema()
	return &FilterPlanNode{&AbstractPlanNode{childOutSchema, []Plan{child}}, predicate}
}

func (p *FilterPlanNode) GetType() PlanType {
	return Filter
}

func (p *FilterPlanNode) GetPredicate() expression.Expression {
	return p.predicate
}

func (p *FilterPlanNode) GetTableOID() uint32 {
	return p.children[0].GetTableOID()
}
