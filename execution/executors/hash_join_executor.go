package executors

import (
	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/container/hash"
	"github.com/opendb/relstore/execution/expression"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"
)

// HashJoinExecutor performs an inner join of two children by building an
// in-memory hash table over the left child's join keys and probing it
// with each right tuple. By convention the left child (index 0) is the
// build side and the right child (index 1) is the probe side.
type HashJoinExecutor struct {
	context *ExecutorContext
	plan    *plans.HashJoinPlanNode
	left    Executor
	right   Executor

	buildTable map[uint32][]*tuple.Tuple

	retTuples []*tuple.Tuple
	curIdx    int32
}

func NewHashJoinExecutor(exec_ctx *ExecutorContext, plan *plans.HashJoinPlanNode, left Executor,
	right Executor) *HashJoinExecutor {
	return &HashJoinExecutor{exec_ctx, plan, left, right, make(map[uint32][]*tuple.Tuple), make([]*tuple.Tuple, 0), 0}
}

func (e *HashJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *HashJoinExecutor) Init() {
	e.left.Init()
	e.right.Init()

	for leftTuple, done, err := e.left.Next(); !done; leftTuple, done, err = e.left.Next() {
		if err != nil {
			e.context.txn.SetState(access.ABORTED)
			return
		}
		key := HashValues(leftTuple, e.left.GetOutputSchema(), e.plan.GetLeftKeys())
		e.buildTable[key] = append(e.buildTable[key], leftTuple)
	}

	for rightTuple, done, err := e.right.Next(); !done; rightTuple, done, err = e.right.Next() {
		if err != nil {
			e.context.txn.SetState(access.ABORTED)
			return
		}
		key := HashValues(rightTuple, e.right.GetOutputSchema(), e.plan.GetRightKeys())
		for _, leftTuple := range e.buildTable[key] {
			if e.IsValidCombination(leftTuple, rightTuple) {
				e.retTuples = append(e.retTuples, e.MakeOutputTuple(leftTuple, rightTuple))
			}
		}
	}
}

// HashValues hashes a tuple by evaluating it against every expression on
// the given schema and combining the serialized non-null values.
func HashValues(tuple_ *tuple.Tuple, schema_ *schema.Schema, exprs []expression.Expression) uint32 {
	keyBytes := make([]byte, 0)
	for _, expr := range exprs {
		val := expr.Evaluate(tuple_, schema_)
		if val.IsNull() {
			continue
		}
		keyBytes = append(keyBytes, val.Serialize()...)
	}
	return hash.GenHashMurMur(keyBytes)
}

func (e *HashJoinExecutor) IsValidCombination(left_tuple *tuple.Tuple, right_tuple *tuple.Tuple) bool {
	predicate := e.plan.OnPredicate()
	if predicate == nil {
		return true
	}
	return predicate.EvaluateJoin(left_tuple, e.left.GetOutputSchema(), right_tuple, e.right.GetOutputSchema()).ToBoolean()
}

func (e *HashJoinExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.curIdx >= int32(len(e.retTuples)) {
		return nil, true, nil
	}
	ret := e.retTuples[e.curIdx]
	e.curIdx++
	return ret, false, nil
}

func (e *HashJoinExecutor) MakeOutputTuple(left_tuple *tuple.Tuple, right_tuple *tuple.Tuple) *tuple.Tuple {
	outputColumnCnt := int(e.GetOutputSchema().GetColumnCount())
	leftColumnCnt := int(e.left.GetOutputSchema().GetColumnCount())
	values := make([]types.Value, outputColumnCnt)
	for ii := 0; ii < outputColumnCnt; ii++ {
		if ii < leftColumnCnt {
			values[ii] = left_tuple.GetValue(e.left.GetOutputSchema(), uint32(ii))
		} else {
			values[ii] = right_tuple.GetValue(e.right.GetOutputSchema(), uint32(ii-leftColumnCnt))
		}
	}
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

// can not be used
func (e *HashJoinExecutor) GetTableMetaData() *catalog.TableMetadata { return nil }
