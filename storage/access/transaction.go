// package concurrency
// package transaction
package access

import (
	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"

	mapset "github.com/deckarep/golang-set/v2"
	stack "github.com/golang-collections/collections/stack"
)

/**
 * Transaction states:
 *
 *     _________________________
 *    |                         v
 * GROWING -> SHRINKING -> COMMITTED   ABORTED
 *    |__________|________________________^
 *
 **/

type TransactionState int32

const (
	GROWING TransactionState = iota
	SHRINKING
	COMMITTED
	ABORTED
)

// IsolationLevel controls which of spec.md §5's locking rules a
// transaction's shared-lock requests follow: READ_UNCOMMITTED never
// acquires shared locks at all, READ_COMMITTED releases them immediately
// after a read, REPEATABLE_READ (the default) holds them until commit.
type IsolationLevel int32

const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
	RepeatableRead
)

/**
 * Type of write operation.
 */
type WType int32

const (
	INSERT WType = iota
	DELETE
	UPDATE
)

// IndexWriteRecord tracks an index mutation made by a transaction, so it
// can be undone if the transaction aborts (spec.md §4.3 "index-write
// set").
type IndexWriteRecord struct {
	Rid      page.RID
	Wtype    WType
	Value    types.Value
	OID      uint32
	IndexOID int
}

/**
 * WriteRecord tracks information related to a write.
 */
type WriteRecord struct {
	rid   page.RID
	wtype WType
	/** The tuple is used only for the updateoperation. */
	tuple *tuple.Tuple
	/** The table heap specifies which table this write record is for. */
	table *TableHeap
	oid   uint32 // for rollback of index data
}

func NewWriteRecord(rid page.RID, wtype WType, tuple *tuple.Tuple, table *TableHeap, oid uint32) *WriteRecord {
	ret := new(WriteRecord)
	ret.rid = rid
	ret.wtype = wtype
	ret.tuple = tuple
	ret.table = table
	ret.oid = oid
	return ret
}

/**
 * Transaction tracks information related to a transaction.
 */
type Transaction struct {
	/** The current transaction state. */
	state TransactionState

	// /** The thread GetPageId, used in single-threaded transactions. */
	// thread_id ThreadID

	/** The GetPageId of this access. */
	txn_id types.TxnID

	// /** The undo set of the access, unwound LIFO on abort/commit. */
	write_set *stack.Stack

	/** The LSN of the last record written by the access. */
	prev_lsn types.LSN

	// /** Concurrent index: the pages that were latched during index operation. */
	// page_set deque<*Page>
	// /** Concurrent index: the page IDs that were deleted during index operation.*/
	// deleted_page_set unordered_set<PageID>

	// /** LockManager: the set of shared-locked tuples held by this access. */
	shared_lock_set mapset.Set[page.RID]
	// /** LockManager: the set of exclusive-locked tuples held by this access. */
	exclusive_lock_set mapset.Set[page.RID]
	dbgInfo            string

	isolation_level IsolationLevel
	index_write_set []*IndexWriteRecord
}

func NewTransaction(txn_id types.TxnID) *Transaction {
	return NewTransactionWithIsolationLevel(txn_id, RepeatableRead)
}

// NewTransactionWithIsolationLevel is NewTransaction with an explicit
// isolation level (spec.md §4.3 Transaction.isolation).
func NewTransactionWithIsolationLevel(txn_id types.TxnID, isolation IsolationLevel) *Transaction {
	return &Transaction{
		GROWING,
		txn_id,
		stack.New(),
		common.InvalidLSN,
		mapset.NewSet[page.RID](),
		mapset.NewSet[page.RID](),
		"",
		isolation,
		make([]*IndexWriteRecord, 0),
	}
}

func (txn *Transaction) GetIsolationLevel() IsolationLevel { return txn.isolation_level }

func (txn *Transaction) GetIndexWriteSet() []*IndexWriteRecord { return txn.index_write_set }

func (txn *Transaction) AddIntoIndexWriteSet(rec *IndexWriteRecord) {
	txn.index_write_set = append(txn.index_write_set, rec)
}

/** @return the id of this transaction */
func (txn *Transaction) GetTransactionId() types.TxnID { return txn.txn_id }

// /** @return the id of the thread running the transaction */
// func (txn *Transaction) GetThreadId() ThreadID { return txn.thread_id }

/** @return the undo stack of write records of this transaction */
func (txn *Transaction) GetWriteSet() *stack.Stack { return txn.write_set }

func (txn *Transaction) SetWriteSet(write_set *stack.Stack) { txn.write_set = write_set }

func (txn *Transaction) AddIntoWriteSet(write_record *WriteRecord) {
	txn.write_set.Push(write_record)
}

// /** @return the set of resources under a shared lock */
func (txn *Transaction) GetSharedLockSet() mapset.Set[page.RID] {
	return txn.shared_lock_set
}

// /** @return the set of resources under an exclusive lock */
func (txn *Transaction) GetExclusiveLockSet() mapset.Set[page.RID] {
	return txn.exclusive_lock_set
}

func (txn *Transaction) SetSharedLockSet(set mapset.Set[page.RID])    { txn.shared_lock_set = set }
func (txn *Transaction) SetExclusiveLockSet(set mapset.Set[page.RID]) { txn.exclusive_lock_set = set }

/** @return true if rid is shared locked by this transaction */
func (txn *Transaction) IsSharedLocked(rid *page.RID) bool {
	return txn.shared_lock_set.Contains(*rid)
}

/** @return true if rid is exclusively locked by this transaction */
func (txn *Transaction) IsExclusiveLocked(rid *page.RID) bool {
	return txn.exclusive_lock_set.Contains(*rid)
}

/** @return the current state of the transaction */
func (txn *Transaction) GetState() TransactionState { return txn.state }

/**
* Set the state of the access.
* @param state new state
 */
func (txn *Transaction) SetState(state TransactionState) {
	if state == ABORTED {
		common.Debugf("Transaction::SetState txn_id=%d dbgInfo=%s state=ABORTED", txn.txn_id, txn.dbgInfo)
	}
	txn.state = state
}

/** @return the previous LSN */
func (txn *Transaction) GetPrevLSN() types.LSN { return txn.prev_lsn }

/**
* Set the previous LSN.
* @param prev_lsn new previous lsn
 */
func (txn *Transaction) SetPrevLSN(prev_lsn types.LSN) { txn.prev_lsn = prev_lsn }

func (txn *Transaction) GetDebugInfo() string { return txn.dbgInfo }

func (txn *Transaction) SetDebugInfo(dbgInfo string) { txn.dbgInfo = dbgInfo }
