//===----------------------------------------------------------------------===//
//
//                         BusTub
//
// lock_manager.cpp
//
// Identification: src/concurrency/lock_manager.cpp
//
// Copyright (c) 2015-2019, Carnegie Mellon University Database Group
//
//===----------------------------------------------------------------------===//
package access

import (
	"sync"

	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/types"
	deadlock "github.com/sasha-s/go-deadlock"
)

/** Two-Phase Locking mode. */
type TwoPLMode int32

const (
	REGULAR TwoPLMode = iota
	STRICT
)

/** Deadlock mode. */
type DeadlockMode int32

const (
	PREVENTION DeadlockMode = iota
	DETECTION
	STRICT_2PL_MODE
)

type LockMode int32

const (
	SHARED LockMode = iota
	EXCLUSIVE
)

type LockRequest struct {
	txn_id    types.TxnID
	lock_mode LockMode
	granted   bool
}

// LockRequestQueue is the wait queue for one RID: every transaction that
// has asked to lock it, in request order, plus the id of whichever
// transaction (if any) is currently trying to upgrade its shared lock to
// exclusive.
type LockRequestQueue struct {
	request_queue []*LockRequest
	upgrading     types.TxnID
}

/**
 * LockManager grants and releases record-level locks under strict
 * two-phase locking with Wound-Wait deadlock avoidance: a request from an
 * older transaction that conflicts with a younger lock holder aborts the
 * younger one; a request from a younger transaction that conflicts with
 * an older lock holder waits.
 */
type LockManager struct {
	two_pl_mode   TwoPLMode
	deadlock_mode DeadlockMode

	mutex deadlock.Mutex
	cond  *sync.Cond
	// lock_table holds one wait queue per locked RID.
	lock_table map[page.RID]*LockRequestQueue
}

func NewLockManager(two_pl_mode TwoPLMode, deadlock_mode DeadlockMode) *LockManager {
	lock_manager := &LockManager{
		two_pl_mode:   two_pl_mode,
		deadlock_mode: deadlock_mode,
		lock_table:    make(map[page.RID]*LockRequestQueue),
	}
	lock_manager.cond = sync.NewCond(&lock_manager.mutex)
	return lock_manager
}

func (lock_manager *LockManager) Detection() bool  { return lock_manager.deadlock_mode == DETECTION }
func (lock_manager *LockManager) Prevention() bool { return lock_manager.deadlock_mode == PREVENTION }

func (lock_manager *LockManager) queueFor(rid page.RID) *LockRequestQueue {
	queue, ok := lock_manager.lock_table[rid]
	if !ok {
		queue = &LockRequestQueue{upgrading: types.InvalidTxnID}
		lock_manager.lock_table[rid] = queue
	}
	return queue
}

// tryGrant applies Wound-Wait to the front of queue: txn's own request is
// granted once nothing ahead of it in queue conflicts. A conflicting
// request from an older transaction (lower txn id) makes txn wait behind
// it; a conflicting request from a younger transaction gets wounded —
// aborted so it releases the lock — instead of blocking txn. Must be
// called with lock_manager.mutex held.
func (lock_manager *LockManager) tryGrant(txn *Transaction, queue *LockRequestQueue, mode LockMode) bool {
	txnID := txn.GetTransactionId()
	if queue.request_queue[0].txn_id == txnID {
		return true
	}

	abortedAny := false
	success := true
	for _, req := range queue.request_queue {
		if req.txn_id == txnID {
			break
		}
		if mode == EXCLUSIVE || req.lock_mode == EXCLUSIVE {
			if req.txn_id < txnID {
				// req is older than txn: txn waits behind it.
				success = false
			} else {
				// req is younger than txn: wound it so it backs off.
				younger := GetTransaction(req.txn_id)
				if younger != nil && younger.GetState() != ABORTED {
					younger.SetState(ABORTED)
					abortedAny = true
				}
			}
		}
	}
	if abortedAny {
		lock_manager.cond.Broadcast()
	}
	return success
}

/**
* Acquire a lock on RID in shared mode. See [LOCK_NOTE]: returns false if
* the transaction is aborted, blocks until granted otherwise.
 */
func (lock_manager *LockManager) LockShared(txn *Transaction, rid *page.RID) bool {
	if txn.GetState() == ABORTED {
		return false
	}
	if txn.GetIsolationLevel() == ReadUncommitted || txn.GetState() != GROWING {
		txn.SetState(ABORTED)
		return false
	}
	if txn.IsSharedLocked(rid) {
		return true
	}

	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	queue := lock_manager.queueFor(*rid)
	queue.request_queue = append(queue.request_queue, &LockRequest{txn_id: txn.GetTransactionId(), lock_mode: SHARED})
	for !lock_manager.tryGrant(txn, queue, SHARED) {
		lock_manager.cond.Wait()
		if txn.GetState() == ABORTED {
			return false
		}
	}
	for _, req := range queue.request_queue {
		if req.txn_id == txn.GetTransactionId() {
			req.granted = true
			break
		}
	}
	txn.GetSharedLockSet().Add(*rid)
	return true
}

/**
* Acquire a lock on RID in exclusive mode. See [LOCK_NOTE].
 */
func (lock_manager *LockManager) LockExclusive(txn *Transaction, rid *page.RID) bool {
	if txn.GetState() == ABORTED {
		return false
	}
	if txn.GetState() != GROWING {
		txn.SetState(ABORTED)
		return false
	}
	if txn.IsExclusiveLocked(rid) {
		return true
	}

	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	queue := lock_manager.queueFor(*rid)
	queue.request_queue = append(queue.request_queue, &LockRequest{txn_id: txn.GetTransactionId(), lock_mode: EXCLUSIVE})
	for !lock_manager.tryGrant(txn, queue, EXCLUSIVE) {
		lock_manager.cond.Wait()
		if txn.GetState() == ABORTED {
			return false
		}
	}
	for _, req := range queue.request_queue {
		if req.txn_id == txn.GetTransactionId() {
			req.granted = true
			break
		}
	}
	txn.GetExclusiveLockSet().Add(*rid)
	return true
}

/**
* Upgrade a lock from shared to exclusive. At most one transaction may be
* upgrading a given RID at a time; unlike the original this is enforced
* before the upgrader waits, not after, so two concurrent upgraders can't
* both slip past the check and deadlock on each other's shared lock.
 */
func (lock_manager *LockManager) LockUpgrade(txn *Transaction, rid *page.RID) bool {
	if txn.GetState() == ABORTED {
		return false
	}
	if txn.GetState() != GROWING {
		txn.SetState(ABORTED)
		return false
	}
	if !txn.IsSharedLocked(rid) {
		return false
	}
	if txn.IsExclusiveLocked(rid) {
		return true
	}

	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	queue := lock_manager.queueFor(*rid)
	if queue.upgrading != types.InvalidTxnID {
		txn.SetState(ABORTED)
		return false
	}
	queue.upgrading = txn.GetTransactionId()

	for _, req := range queue.request_queue {
		if req.txn_id == txn.GetTransactionId() {
			req.lock_mode = EXCLUSIVE
			break
		}
	}
	for !lock_manager.tryGrant(txn, queue, EXCLUSIVE) {
		lock_manager.cond.Wait()
		if txn.GetState() == ABORTED {
			queue.upgrading = types.InvalidTxnID
			return false
		}
	}

	for _, req := range queue.request_queue {
		if req.txn_id == txn.GetTransactionId() {
			req.granted = true
			break
		}
	}
	queue.upgrading = types.InvalidTxnID
	txn.GetSharedLockSet().Remove(*rid)
	txn.GetExclusiveLockSet().Add(*rid)
	return true
}

/**
* Release every lock in rid_list held by txn, dropping txn to SHRINKING
* under REPEATABLE_READ (strict 2PL keeps it GROWING until commit/abort
* instead).
 */
func (lock_manager *LockManager) Unlock(txn *Transaction, rid_list []page.RID) bool {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	if txn.GetState() == GROWING && txn.GetIsolationLevel() == RepeatableRead {
		txn.SetState(SHRINKING)
	}

	for _, rid := range rid_list {
		queue, ok := lock_manager.lock_table[rid]
		if !ok {
			continue
		}
		for i, req := range queue.request_queue {
			if req.txn_id == txn.GetTransactionId() {
				queue.request_queue = append(queue.request_queue[:i], queue.request_queue[i+1:]...)
				break
			}
		}
	}
	sharedSet := txn.GetSharedLockSet()
	exclusiveSet := txn.GetExclusiveLockSet()
	for _, rid := range rid_list {
		sharedSet.Remove(rid)
		exclusiveSet.Remove(rid)
	}
	lock_manager.cond.Broadcast()
	return true
}
