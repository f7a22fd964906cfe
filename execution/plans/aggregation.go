package plans

import (
	"github.com/opendb/relstore/execution/expression"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/types"
)

// AggregationType enumerates the possible aggregation functions.
type AggregationType int32

const (
	COUNT_AGGREGATE AggregationType = iota
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
)

// AggregateKey is the group-by portion of one row of an aggregation's
// result, used as the hash table key that rows are combined under.
type AggregateKey struct {
	Group_bys_ []*types.Value
}

func (key AggregateKey) CompareEquals(other AggregateKey) bool {
	if len(key.Group_bys_) != len(other.Group_bys_) {
		return false
	}
	for i := range key.Group_bys_ {
		if !key.Group_bys_[i].CompareEquals(*other.Group_bys_[i]) {
			return false
		}
	}
	return true
}

// AggregateValue is the running aggregate state for one AggregateKey.
type AggregateValue struct {
	Aggregates_ []*types.Value
}

// AggregationPlanNode represents the SQL aggregation functions COUNT, SUM,
// MIN and MAX, with an optional HAVING clause and GROUP BY columns.
// AggregationPlanNode always has exactly one child.
type AggregationPlanNode struct {
	*AbstractPlanNode
	having     expression.Expression
	group_bys  []expression.Expression
	aggregates []expression.Expression
	agg_types  []AggregationType
}

func NewAggregationPlanNode(output_schema *schema.Schema, child Plan, having expression.Expression,
	group_bys []expression.Expression, aggregates []expression.Expression, agg_types []AggregationType) *AggregationPlanNode {
	return &AggregationPlanNode{&AbstractPlanNode{output_schema, []Plan{child}}, having, group_bys, aggregates, agg_types}
}

func (p *AggregationPlanNode) GetType() PlanType { return Aggregation }

/** @return the child of this aggregation plan node */
func (p *AggregationPlanNode) GetChildPlan() Plan {
	return p.GetChildAt(0)
}

func (p *AggregationPlanNode) GetHaving() expression.Expression { return p.having }

func (p *AggregationPlanNode) GetGroupByAt(idx uint32) expression.Expression { return p.group_bys[idx] }

func (p *AggregationPlanNode) GetGroupBys() []expression.Expression { return p.group_bys }

func (p *AggregationPlanNode) GetAggregateAt(idx uint32) expression.Expression { return p.aggregates[idx] }

func (p *AggregationPlanNode) GetAggregates() []expression.Expression { return p.aggregates }

func (p *AggregationPlanNode) GetAggregateTypes() []AggregationType { return p.agg_types }

func (p *AggregationPlanNode) GetTableOID() uint32 { return p.children[0].GetTableOID() }
