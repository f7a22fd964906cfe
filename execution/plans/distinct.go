package plans

// DistinctPlanNode deduplicates the tuples produced by its child, using
// the child's full output row as the dedup key. DistinctPlanNode always
// has exactly one child and its output schema is the same as the
// child's.
type DistinctPlanNode struct {
	*AbstractPlanNode
}

func NewDistinctPlanNode(child Plan) Plan {
	return &DistinctPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}}
}

func (p *DistinctPlanNode) GetType() PlanType { return Distinct }

func (p *DistinctPlanNode) GetChildPlan() Plan { return p.GetChildAt(0) }

func (p *DistinctPlanNode) GetTableOID() uint32 { return p.children[0].GetTableOID() }
