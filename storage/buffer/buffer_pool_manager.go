// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"errors"

	"github.com/golang-collections/collections/queue"
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/storage/disk"
	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/types"
)

// ErrBufferPoolFull is returned by NewPage/FetchPage when every frame is
// pinned and there is nothing left to evict.
var ErrBufferPoolFull = errors.New("buffer pool: no free frame available")

// ErrPageNotFound is returned by operations on a page id the pool does not
// currently hold resident.
var ErrPageNotFound = errors.New("buffer pool: page not resident")

// BufferPoolManager is one shard of the buffer pool: a fixed-size array of
// frames, an LRU replacer over the unpinned ones, and the page table mapping
// resident page ids to frames. numInstances/instanceIndex let it allocate
// page ids that route back to itself under ParallelBufferPoolManager's
// page_id % num_instances scheme.
type BufferPoolManager struct {
	latch deadlock.Mutex

	diskManager disk.DiskManager
	pages       []*page.Page
	replacer    *LRUReplacer
	freeList    *queue.Queue
	pageTable   map[types.PageID]FrameID

	numInstances  uint32
	instanceIndex uint32
}

// NewBufferPoolManager returns an empty buffer pool shard of poolSize
// frames. instanceIndex/numInstances are 0/1 for a standalone (unsharded)
// pool.
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager, numInstances, instanceIndex uint32) *BufferPoolManager {
	freeList := queue.New()
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList.Enqueue(FrameID(i))
	}

	return &BufferPoolManager{
		diskManager:   diskManager,
		pages:         pages,
		replacer:      NewLRUReplacer(poolSize),
		freeList:      freeList,
		pageTable:     make(map[types.PageID]FrameID),
		numInstances:  numInstances,
		instanceIndex: instanceIndex,
	}
}

// PoolSize returns the number of frames in this shard.
func (b *BufferPoolManager) PoolSize() int {
	return len(b.pages)
}

// FetchPage returns the requested page, pinning it. If it is not already
// resident, a frame is evicted (free list first, else the LRU victim,
// write-back if dirty) to make room.
func (b *BufferPoolManager) FetchPage(pageID types.PageID) (*page.Page, error) {
	b.latch.Lock()
	defer b.latch.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		b.replacer.Pin(frameID)
		return pg, nil
	}

	frameID, err := b.allocateFrame()
	if err != nil {
		return nil, err
	}

	data := make([]byte, common.PageSize)
	if err := b.diskManager.ReadPage(pageID, data); err != nil {
		b.freeList.Enqueue(frameID)
		return nil, err
	}

	pg := page.New(pageID, false, data)
	b.pageTable[pageID] = frameID
	b.pages[frameID] = pg
	return pg, nil
}

// UnpinPage decrements pageID's pin count; once it reaches zero the frame
// becomes eligible for eviction. isDirty ORs into the page's dirty flag —
// a page is never un-dirtied by an unpin that claims it is clean.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) error {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return ErrPageNotFound
	}
	pg := b.pages[frameID]
	pg.DecPinCount()
	if isDirty {
		pg.SetIsDirty(true)
	}
	if pg.PinCount() <= 0 {
		b.replacer.Unpin(frameID)
	}
	return nil
}

// FlushPage writes pageID to disk unconditionally and clears its dirty bit.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) error {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return ErrPageNotFound
	}
	pg := b.pages[frameID]
	if err := b.diskManager.WritePage(pageID, pg.Data()); err != nil {
		return err
	}
	pg.SetIsDirty(false)
	return nil
}

// FlushAllPages writes every resident page to disk.
func (b *BufferPoolManager) FlushAllPages() {
	b.latch.Lock()
	pageIDs := make([]types.PageID, 0, len(b.pageTable))
	for pageID := range b.pageTable {
		pageIDs = append(pageIDs, pageID)
	}
	b.latch.Unlock()

	for _, pageID := range pageIDs {
		b.FlushPage(pageID)
	}
}

// NewPage allocates a fresh page, pinned once, evicting a frame if needed.
// The returned page id satisfies id % numInstances == instanceIndex so that
// ParallelBufferPoolManager routes it back to this shard.
func (b *BufferPoolManager) NewPage() (*page.Page, error) {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, err := b.allocateFrame()
	if err != nil {
		return nil, err
	}

	localID := b.diskManager.AllocatePage()
	pageID := b.toShardedPageID(localID)

	pg := page.NewEmpty(pageID)
	b.pageTable[pageID] = frameID
	b.pages[frameID] = pg
	return pg, nil
}

func (b *BufferPoolManager) toShardedPageID(localID types.PageID) types.PageID {
	if b.numInstances <= 1 {
		return localID
	}
	return types.PageID(int32(localID)*int32(b.numInstances) + int32(b.instanceIndex))
}

// DeletePage evicts pageID from the pool and tells the disk manager its
// space may be reused. It refuses to delete a page still pinned elsewhere.
func (b *BufferPoolManager) DeletePage(pageID types.PageID) error {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return nil
	}
	pg := b.pages[frameID]
	if pg.PinCount() > 0 {
		return errors.New("buffer pool: cannot delete a pinned page")
	}
	delete(b.pageTable, pageID)
	b.replacer.Pin(frameID)
	b.diskManager.DeallocatePage(pageID)
	b.pages[frameID] = nil
	b.freeList.Enqueue(frameID)
	return nil
}

// allocateFrame returns a free frame, taking first from the free list, then
// from the LRU victim (writing it back first if dirty). Caller must hold
// b.latch.
func (b *BufferPoolManager) allocateFrame() (FrameID, error) {
	if b.freeList.Len() > 0 {
		return b.freeList.Dequeue().(FrameID), nil
	}

	victim := b.replacer.Victim()
	if victim == nil {
		return 0, ErrBufferPoolFull
	}
	frameID := *victim
	current := b.pages[frameID]
	if current != nil {
		if current.IsDirty() {
			if err := b.diskManager.WritePage(current.GetPageId(), current.Data()); err != nil {
				return 0, err
			}
		}
		delete(b.pageTable, current.GetPageId())
	}
	return frameID, nil
}
