package checkpoint

import (
	"github.com/opendb/relstore/recovery"
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/buffer"
)

// CheckpointManager creates consistent checkpoints by blocking all other
// transactions temporarily.
type CheckpointManager struct {
	transaction_manager *access.TransactionManager
	log_manager         *recovery.LogManager
	buffer_pool_manager *buffer.BufferPoolManager
}

func NewCheckpointManager(
	transaction_manager *access.TransactionManager,
	log_manager *recovery.LogManager,
	buffer_pool_manager *buffer.BufferPoolManager) *CheckpointManager {
	return &CheckpointManager{transaction_manager, log_manager, buffer_pool_manager}
}

func (checkpoint_manager *CheckpointManager) BeginCheckpoint() {
	// Block transactions and ensure both the WAL and all dirty buffer pool
	// pages are persisted to disk. Transactions resume in EndCheckpoint,
	// not here, so a caller can inspect a stable snapshot in between.
	checkpoint_manager.transaction_manager.BlockAllTransactions()
	checkpoint_manager.buffer_pool_manager.FlushAllPages()
	checkpoint_manager.log_manager.Flush()
}

func (checkpoint_manager *CheckpointManager) EndCheckpoint() {
	checkpoint_manager.transaction_manager.ResumeTransactions()
}
