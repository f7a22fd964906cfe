package executors

import (
	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"

	mapset "github.com/deckarep/golang-set/v2"
)

// DistinctExecutor removes duplicate rows from its child's output,
// comparing rows by the byte encoding of every output column.
type DistinctExecutor struct {
	context *ExecutorContext
	plan    *plans.DistinctPlanNode
	child   Executor
	seen    mapset.Set[string]
}

func NewDistinctExecutor(context *ExecutorContext, plan *plans.DistinctPlanNode, child Executor) Executor {
	return &DistinctExecutor{context, plan, child, mapset.NewSet[string]()}
}

func (e *DistinctExecutor) Init() {
	e.child.Init()
	e.seen = mapset.NewSet[string]()
}

func (e *DistinctExecutor) Next() (*tuple.Tuple, Done, error) {
	for {
		tuple_, done, err := e.child.Next()
		if done || err != nil {
			return nil, true, err
		}
		key := e.rowKey(tuple_)
		if e.seen.Contains(key) {
			continue
		}
		e.seen.Add(key)
		return tuple_, false, nil
	}
}

func (e *DistinctExecutor) rowKey(tuple_ *tuple.Tuple) string {
	outSchema := e.GetOutputSchema()
	key := make([]byte, 0)
	for i := uint32(0); i < outSchema.GetColumnCount(); i++ {
		val := tuple_.GetValue(outSchema, i)
		key = append(key, val.Serialize()...)
	}
	return string(key)
}

func (e *DistinctExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *DistinctExecutor) GetTableMetaData() *catalog.TableMetadata {
	return e.child.GetTableMetaData()
}
