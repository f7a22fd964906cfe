package buffer

import (
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/opendb/relstore/storage/disk"
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/types"
)

// ParallelBufferPoolManager fans the buffer pool out across numInstances
// independent BufferPoolManager shards, routed by page_id % numInstances,
// so that unrelated pages never contend on the same shard latch.
// Ground truth: original_source/src/buffer/parallel_buffer_pool_manager.cpp.
type ParallelBufferPoolManager struct {
	newPageLatch  deadlock.Mutex
	instances     []*BufferPoolManager
	numInstances  uint32
	startingIndex uint32
}

// NewParallelBufferPoolManager creates numInstances shards of poolSize
// frames each, sharing one disk manager.
func NewParallelBufferPoolManager(numInstances, poolSize uint32, diskManager disk.DiskManager) *ParallelBufferPoolManager {
	instances := make([]*BufferPoolManager, numInstances)
	for i := uint32(0); i < numInstances; i++ {
		instances[i] = NewBufferPoolManager(poolSize, diskManager, numInstances, i)
	}
	return &ParallelBufferPoolManager{instances: instances, numInstances: numInstances}
}

// GetPoolSize returns the total frame count across every shard.
func (p *ParallelBufferPoolManager) GetPoolSize() int {
	total := 0
	for _, inst := range p.instances {
		total += inst.PoolSize()
	}
	return total
}

// getInstance returns the shard responsible for pageID.
func (p *ParallelBufferPoolManager) getInstance(pageID types.PageID) *BufferPoolManager {
	idx := uint32(pageID) % p.numInstances
	return p.instances[idx]
}

func (p *ParallelBufferPoolManager) FetchPage(pageID types.PageID) (*page.Page, error) {
	return p.getInstance(pageID).FetchPage(pageID)
}

func (p *ParallelBufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) error {
	return p.getInstance(pageID).UnpinPage(pageID, isDirty)
}

func (p *ParallelBufferPoolManager) FlushPage(pageID types.PageID) error {
	return p.getInstance(pageID).FlushPage(pageID)
}

func (p *ParallelBufferPoolManager) DeletePage(pageID types.PageID) error {
	return p.getInstance(pageID).DeletePage(pageID)
}

func (p *ParallelBufferPoolManager) FlushAllPages() {
	for _, inst := range p.instances {
		inst.FlushAllPages()
	}
}

// NewPage requests a new page from shards in round-robin order, starting
// from startingIndex and advancing it on every call, so that repeated
// allocation bursts spread across shards instead of hammering one.
func (p *ParallelBufferPoolManager) NewPage() (*page.Page, error) {
	p.newPageLatch.Lock()
	defer p.newPageLatch.Unlock()

	var lastErr error
	for i := uint32(0); i < p.numInstances; i++ {
		inst := p.instances[p.startingIndex]
		p.startingIndex = (p.startingIndex + 1) % p.numInstances
		pg, err := inst.NewPage()
		if err == nil {
			return pg, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
