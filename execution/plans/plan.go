// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package plans

import "github.com/opendb/relstore/storage/table/schema"

type PlanType int

const (
	SeqScan PlanType = iota
	Insert
	Delete
	Update
	Filter
	Selection
	Projection
	Limit
	Distinct
	Aggregation
	HashJoin
	NestedLoopJoin
	IndexJoin
	Orderby
	IndexPointScan
	HashScanIndex
)

// Plan is one node of a query plan tree: an operator with zero or more
// child operators, producing tuples in the shape of OutputSchema.
type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
	GetTableOID() uint32
}

// AbstractPlanNode holds the fields shared by every concrete plan node:
// its output schema and its children. Concrete plan nodes embed it and
// add whatever else their operator needs (predicates, table oids, ...).
type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema { return p.outputSchema }

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	if int(childIndex) >= len(p.children) {
		return nil
	}
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan { return p.children }
