package executors

import (
	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
)

// LimitExecutor skips its child's first offset tuples and yields at most
// limit tuples after that.
type LimitExecutor struct {
	context *ExecutorContext
	plan    *plans.LimitPlanNode
	child   Executor
	emitted uint32
}

func NewLimitExecutor(context *ExecutorContext, plan *plans.LimitPlanNode, child Executor) Executor {
	return &LimitExecutor{context, plan, child, 0}
}

func (e *LimitExecutor) Init() {
	e.child.Init()
	for i := uint32(0); i < e.plan.GetOffset(); i++ {
		_, done, _ := e.child.Next()
		if done {
			break
		}
	}
}

func (e *LimitExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.emitted >= e.plan.GetLimit() {
		return nil, true, nil
	}
	tuple_, done, err := e.child.Next()
	if done || err != nil {
		return nil, true, err
	}
	e.emitted++
	return tuple_, false, nil
}

func (e *LimitExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *LimitExecutor) GetTableMetaData() *catalog.TableMetadata { return e.child.GetTableMetaData() }
