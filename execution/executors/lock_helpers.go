package executors

import (
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/page"
)

// acquireWriteLock gets txn an exclusive lock on rid before a mutating
// executor writes to it, upgrading a held shared lock instead of
// requesting a fresh exclusive one when possible.
func acquireWriteLock(context *ExecutorContext, txn *access.Transaction, rid *page.RID) bool {
	if txn.IsExclusiveLocked(rid) {
		return true
	}
	if txn.IsSharedLocked(rid) {
		return context.GetLockManager().LockUpgrade(txn, rid)
	}
	return context.GetLockManager().LockExclusive(txn, rid)
}
