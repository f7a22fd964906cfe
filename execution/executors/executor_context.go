package executors

import (
	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/buffer"
)

// ExecutorContext stores all the context necessary to run an executor: the
// catalog it resolves table/index metadata against, the buffer pool it
// reads and writes pages through, the transaction its reads and writes
// are performed under, and the lock manager that serializes those reads
// and writes against every other running transaction.
type ExecutorContext struct {
	catalog      *catalog.Catalog
	bpm          *buffer.BufferPoolManager
	txn          *access.Transaction
	lock_manager *access.LockManager
}

func NewExecutorContext(catalog *catalog.Catalog, bpm *buffer.BufferPoolManager, txn *access.Transaction, lock_manager *access.LockManager) *ExecutorContext {
	return &ExecutorContext{catalog, bpm, txn, lock_manager}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog
}

func (e *ExecutorContext) GetBufferPoolManager() *buffer.BufferPoolManager {
	return e.bpm
}

func (e *ExecutorContext) GetTransaction() *access.Transaction {
	return e.txn
}

func (e *ExecutorContext) GetLockManager() *access.LockManager {
	return e.lock_manager
}
