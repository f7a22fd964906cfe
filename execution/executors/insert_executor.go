package executors

import (
	"fmt"

	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
)

/**
 * InsertExecutor inserts the raw values embedded in its plan node into a table.
 */
type InsertExecutor struct {
	context       *ExecutorContext
	plan          *plans.InsertPlanNode
	tableMetadata *catalog.TableMetadata
	txn           *access.Transaction
	rawIdx        int
}

func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode) Executor {
	tableMetadata := context.GetCatalog().GetTableByOID(plan.GetTableOID())
	return &InsertExecutor{context, plan, tableMetadata, context.GetTransaction(), 0}
}

func (e *InsertExecutor) Init() {
	e.rawIdx = 0
}

// Next inserts one raw value per call, returning the inserted tuple until
// every raw value has been inserted.
func (e *InsertExecutor) Next() (*tuple.Tuple, Done, error) {
	rawValues := e.plan.GetRawValues()
	if e.rawIdx >= len(rawValues) {
		return nil, true, nil
	}

	tuple_ := tuple.NewTupleFromSchema(rawValues[e.rawIdx], e.tableMetadata.Schema())
	rid, err := e.tableMetadata.Table().InsertTuple(tuple_, e.txn, e.tableMetadata.OID())
	if err != nil {
		e.txn.SetState(access.ABORTED)
		return nil, true, err
	}
	tuple_.SetRID(rid)
	e.rawIdx++

	if !acquireWriteLock(e.context, e.txn, rid) {
		return nil, true, fmt.Errorf("insert: lock request on rid %v aborted transaction %d", rid, e.txn.GetTransactionId())
	}

	colNum := int(e.tableMetadata.GetColumnNum())
	for ii := 0; ii < colNum; ii++ {
		index_ := e.tableMetadata.GetIndex(ii)
		if index_ == nil {
			continue
		}
		index_.InsertEntry(tuple_, *rid, e.txn)
	}

	return tuple_, false, nil
}

func (e *InsertExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *InsertExecutor) GetTableMetaData() *catalog.TableMetadata { return e.tableMetadata }
