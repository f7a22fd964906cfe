package executors

import (
	"fmt"
	"sort"

	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
)

/**
 * OrderbyExecutor sorts the tuples produced by its child according to the
 * columns and directions named in its plan node.
 */
type OrderbyExecutor struct {
	context *ExecutorContext
	/** The order by plan node. */
	plan_ *plans.OrderbyPlanNode
	/** The child executor whose tuples we are sorting. */
	child_       []Executor
	sort_tuples_ []*tuple.Tuple
	cur_idx_     int // target tuple index on Next method
}

/**
 * Creates a new orderby executor.
 * @param exec_ctx the context that the sort should be performed in
 * @param plan the orderby plan node
 * @param child the child executor
 */
func NewOrderbyExecutor(exec_ctx *ExecutorContext, plan *plans.OrderbyPlanNode,
	child Executor) *OrderbyExecutor {
	return &OrderbyExecutor{exec_ctx, plan, []Executor{child}, make([]*tuple.Tuple, 0), 0}
}

func (e *OrderbyExecutor) GetOutputSchema() *schema.Schema { return e.plan_.OutputSchema() }

func (e *OrderbyExecutor) Init() {
	e.child_[0].Init()
	child_exec := e.child_[0]
	inserted_tuple_cnt := 0
	for {
		tuple_, done, err := child_exec.Next()
		if err != nil || done {
			if err != nil {
				fmt.Println(err)
			}
			break
		}

		if tuple_ != nil {
			e.sort_tuples_ = append(e.sort_tuples_, tuple_)
			inserted_tuple_cnt++
		}
	}
	fmt.Printf("inserted_tuple_cnt %d\n", inserted_tuple_cnt)

	colIdxs := e.plan_.GetColIdxs()
	orderbyTypes := e.plan_.GetOrderbyTypes()
	outSchema := e.GetOutputSchema()
	sort.SliceStable(e.sort_tuples_, func(i, j int) bool {
		left := e.sort_tuples_[i]
		right := e.sort_tuples_[j]
		for k, colIdx := range colIdxs {
			leftVal := left.GetValue(outSchema, uint32(colIdx))
			rightVal := right.GetValue(outSchema, uint32(colIdx))
			if leftVal.CompareEquals(rightVal) {
				continue
			}
			less := leftVal.CompareLessThan(rightVal)
			if orderbyTypes[k] == plans.DESC {
				return !less
			}
			return less
		}
		return false
	})
}

func (e *OrderbyExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.cur_idx_ >= len(e.sort_tuples_) {
		return nil, true, nil
	}
	tuple_ := e.sort_tuples_[e.cur_idx_]
	e.cur_idx_++
	return tuple_, false, nil
}

func (e *OrderbyExecutor) GetTableMetaData() *catalog.TableMetadata {
	return e.child_[0].GetTableMetaData()
}
