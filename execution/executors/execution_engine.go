package executors

import (
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/tuple"
)

// ExecutionEngine drives a plan tree to completion, materializing every
// tuple it produces. Real query processing would stream tuples to a
// client instead of buffering them, but this pull-based engine is only
// ever driven to exhaustion in this codebase.
type ExecutionEngine struct {
}

func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) []*tuple.Tuple {
	executor := e.createExecutor(plan, context)
	if executor == nil {
		return nil
	}

	executor.Init()

	tuples := make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := executor.Next()
		if done || err != nil {
			break
		}
		tuples = append(tuples, tuple_)
	}

	return tuples
}

func (e *ExecutionEngine) createExecutor(plan plans.Plan, context *ExecutorContext) Executor {
	switch p := plan.(type) {
	case *plans.InsertPlanNode:
		return NewInsertExecutor(context, p)
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p)
	case *plans.PointScanWithIndexPlanNode:
		return NewPointScanWithIndexExecutor(context, p)
	case *plans.HashScanIndexPlanNode:
		return NewHashScanIndexExecutor(context, p)
	case *plans.DeletePlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewDeleteExecutor(context, p, child)
	case *plans.UpdatePlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewUpdateExecutor(context, p, child)
	case *plans.FilterPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewFilterExecutor(context, p, child)
	case *plans.ProjectionPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewProjectionExecutor(context, p, child)
	case *plans.LimitPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewLimitExecutor(context, p, child)
	case *plans.DistinctPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewDistinctExecutor(context, p, child)
	case *plans.OrderbyPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewOrderbyExecutor(context, p, child)
	case *plans.AggregationPlanNode:
		child := e.createExecutor(p.GetChildAt(0), context)
		return NewAggregationExecutor(context, p, child)
	case *plans.HashJoinPlanNode:
		left := e.createExecutor(p.GetLeftPlan(), context)
		right := e.createExecutor(p.GetRightPlan(), context)
		return NewHashJoinExecutor(context, p, left, right)
	case *plans.NestedLoopJoinPlanNode:
		left := e.createExecutor(p.GetChildAt(0), context)
		right := e.createExecutor(p.GetChildAt(1), context)
		return NewNestedLoopJoinExecutor(context, p, left, right)
	case *plans.IndexJoinPlanNode:
		left := e.createExecutor(p.GetLeftPlan(), context)
		// the right side of an index join is probed by point scan rather
		// than driven to exhaustion; this executor is only consulted for
		// its output schema.
		rightScanPlan := plans.NewSeqScanPlanNode(p.GetRightOutSchema(), nil, p.GetRightTableOID())
		right := e.createExecutor(rightScanPlan, context)
		return NewIndexJoinExecutor(context, p, left, right)
	}
	return nil
}
