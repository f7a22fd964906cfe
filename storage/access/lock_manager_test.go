package access

import (
	"path/filepath"
	"testing"

	"github.com/opendb/relstore/recovery"
	"github.com/opendb/relstore/storage/disk"
	"github.com/opendb/relstore/storage/page"
	testingpkg "github.com/opendb/relstore/testing"
	"github.com/opendb/relstore/types"
)

func newTestTransactionManager(t *testing.T) (*TransactionManager, func()) {
	dm := disk.NewDiskManagerImpl(filepath.Join(t.TempDir(), "test.db"))
	log_manager := recovery.NewLogManager(dm)
	lock_manager := NewLockManager(REGULAR, PREVENTION)
	return NewTransactionManager(lock_manager, log_manager), dm.ShutDown
}

func TestLockManagerSharedLocksAreCompatible(t *testing.T) {
	txn_mgr, shutdown := newTestTransactionManager(t)
	defer shutdown()

	txn1 := txn_mgr.Begin(nil)
	txn2 := txn_mgr.Begin(nil)
	rid := page.RID{}
	rid.Set(types.PageID(0), 0)

	testingpkg.Assert(t, txn_mgr.lock_manager.LockShared(txn1, &rid), "txn1 should acquire the shared lock")
	testingpkg.Assert(t, txn_mgr.lock_manager.LockShared(txn2, &rid), "txn2 should share a compatible shared lock")
	testingpkg.Assert(t, txn1.IsSharedLocked(&rid), "txn1 should record the rid in its shared lock set")
	testingpkg.Assert(t, txn2.IsSharedLocked(&rid), "txn2 should record the rid in its shared lock set")
}

// A younger transaction's request against an older holder must wait
// rather than be granted immediately: T1 (id 1) already holds an
// exclusive lock on rid, and T2 (id 5) requests it.
func TestLockManagerOlderHolderMakesYoungerRequesterWait(t *testing.T) {
	lock_manager := NewLockManager(REGULAR, PREVENTION)
	txn1 := NewTransaction(types.TxnID(1))
	txn5 := NewTransaction(types.TxnID(5))
	txn_map[txn1.GetTransactionId()] = txn1
	txn_map[txn5.GetTransactionId()] = txn5

	queue := &LockRequestQueue{
		request_queue: []*LockRequest{
			{txn_id: txn1.GetTransactionId(), lock_mode: EXCLUSIVE, granted: true},
			{txn_id: txn5.GetTransactionId(), lock_mode: EXCLUSIVE, granted: false},
		},
		upgrading: types.InvalidTxnID,
	}

	granted := lock_manager.tryGrant(txn5, queue, EXCLUSIVE)
	testingpkg.Assert(t, !granted, "T2 must wait behind the older T1, not be granted immediately")
	testingpkg.Assert(t, txn1.GetState() != ABORTED, "T1 must not be wounded by a younger requester")
}

// A younger holder blocking an older requester gets wounded instead of
// making the older transaction wait: T2 (id 5) holds a lock rid, and T1
// (id 1) requests it.
func TestLockManagerOlderRequesterWoundsYoungerHolder(t *testing.T) {
	lock_manager := NewLockManager(REGULAR, PREVENTION)
	txn1 := NewTransaction(types.TxnID(1))
	txn5 := NewTransaction(types.TxnID(5))
	txn_map[txn1.GetTransactionId()] = txn1
	txn_map[txn5.GetTransactionId()] = txn5

	queue := &LockRequestQueue{
		request_queue: []*LockRequest{
			{txn_id: txn5.GetTransactionId(), lock_mode: EXCLUSIVE, granted: true},
			{txn_id: txn1.GetTransactionId(), lock_mode: EXCLUSIVE, granted: false},
		},
		upgrading: types.InvalidTxnID,
	}

	granted := lock_manager.tryGrant(txn1, queue, EXCLUSIVE)
	testingpkg.Assert(t, granted, "T1 should be granted once the younger holder is wounded")
	testingpkg.Assert(t, txn5.GetState() == ABORTED, "T2 must be wounded to back off for the older T1")
}

// At most one transaction may be upgrading a given rid at a time; a
// second concurrent upgrader is aborted rather than queued.
func TestLockManagerConcurrentUpgradeConflictAborts(t *testing.T) {
	txn_mgr, shutdown := newTestTransactionManager(t)
	defer shutdown()

	txn1 := txn_mgr.Begin(nil)
	txn2 := txn_mgr.Begin(nil)
	rid := page.RID{}
	rid.Set(types.PageID(0), 0)

	testingpkg.Assert(t, txn_mgr.lock_manager.LockShared(txn1, &rid), "txn1 should acquire the shared lock")
	testingpkg.Assert(t, txn_mgr.lock_manager.LockShared(txn2, &rid), "txn2 should share a compatible shared lock")

	// Simulate txn1's upgrade already in flight.
	queue := txn_mgr.lock_manager.queueFor(rid)
	queue.upgrading = txn1.GetTransactionId()

	upgraded := txn_mgr.lock_manager.LockUpgrade(txn2, &rid)
	testingpkg.Assert(t, !upgraded, "a second concurrent upgrader must not be granted")
	testingpkg.Assert(t, txn2.GetState() == ABORTED, "a second concurrent upgrader must be aborted")
}

func TestLockManagerUnlockClearsLockSetsAndQueue(t *testing.T) {
	txn_mgr, shutdown := newTestTransactionManager(t)
	defer shutdown()

	txn1 := txn_mgr.Begin(nil)
	rid := page.RID{}
	rid.Set(types.PageID(0), 0)

	testingpkg.Assert(t, txn_mgr.lock_manager.LockExclusive(txn1, &rid), "txn1 should acquire the exclusive lock")
	testingpkg.Assert(t, txn_mgr.lock_manager.Unlock(txn1, []page.RID{rid}), "unlock should succeed")
	testingpkg.Assert(t, !txn1.IsExclusiveLocked(&rid), "unlock should drop the rid from the exclusive lock set")

	txn2 := txn_mgr.Begin(nil)
	testingpkg.Assert(t, txn_mgr.lock_manager.LockExclusive(txn2, &rid), "the rid should be free for another transaction after unlock")
}
