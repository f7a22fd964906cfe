// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"sync/atomic"

	"github.com/ncw/directio"

	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/types"
)

const SizePageHeader = 8
const OffsetPageStart = 0
const OffsetLSN = 4

// Page is the buffer pool's in-memory wrapper around one fixed-size frame
// of page data, plus the book-keeping the buffer pool needs: pin count,
// dirty flag, page id, and a latch for concurrent readers/writers of the
// frame's bytes (spec.md GLOSSARY: "page" vs "frame").
type Page struct {
	id       types.PageID
	pinCount int32
	isDirty  bool
	data     []byte // len == common.PageSize, allocated on directio-aligned memory
	latch    common.ReaderWriterLatch
}

// New wraps an existing directio-aligned data block as page id, pinned once.
func New(id types.PageID, isDirty bool, data []byte) *Page {
	return &Page{id, 1, isDirty, data, common.NewRWLatch()}
}

// NewEmpty allocates a fresh page-aligned frame for id, pinned once.
func NewEmpty(id types.PageID) *Page {
	return &Page{id, 1, false, directio.AlignedBlock(common.PageSize), common.NewRWLatch()}
}

// IncPinCount increments the pin count. The buffer pool calls this whenever
// it hands a already-resident page back out to a second caller.
func (p *Page) IncPinCount() {
	atomic.AddInt32(&p.pinCount, 1)
}

// DecPinCount decrements the pin count; it never goes below zero, matching
// the original's "clamp, never panic on an extra unpin" behavior.
func (p *Page) DecPinCount() {
	if atomic.AddInt32(&p.pinCount, -1) < 0 {
		atomic.AddInt32(&p.pinCount, 1)
	}
}

func (p *Page) PinCount() int32 {
	return atomic.LoadInt32(&p.pinCount)
}

func (p *Page) GetPageId() types.PageID {
	return p.id
}

func (p *Page) Data() []byte {
	return p.data
}

// Copy writes data into the page's backing array starting at offset.
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *Page) IsDirty() bool {
	return p.isDirty
}

// GetLSN returns the LSN stamped in this page's header by the last
// structural change that was logged (spec.md §3 RT1: a page's LSN governs
// whether the log manager must force a WAL flush before it is evicted).
func (p *Page) GetLSN() types.LSN {
	return types.NewLSNFromBytes(p.data[OffsetLSN : OffsetLSN+types.SizeOfLSN])
}

func (p *Page) SetLSN(lsn types.LSN) {
	copy(p.data[OffsetLSN:OffsetLSN+types.SizeOfLSN], lsn.Serialize())
}

// WLatch/WUnlatch/RLatch/RUnlatch guard the frame's byte contents (distinct
// from the pin count, which is itself atomic and needs no latch).
func (p *Page) WLatch()   { p.latch.WLock() }
func (p *Page) WUnlatch() { p.latch.WUnlock() }
func (p *Page) RLatch()   { p.latch.RLock() }
func (p *Page) RUnlatch() { p.latch.RUnlock() }

func (p *Page) RWLatchObj() common.ReaderWriterLatch {
	return p.latch
}

// AddRLatchRecord/RemoveRLatchRecord/AddWLatchRecord/RemoveWLatchRecord are
// no-op hooks for debug-time latch-ownership tracking (kept as stubs to
// match the teacher's original instrumentation points).
func (p *Page) AddRLatchRecord(info int32)    {}
func (p *Page) RemoveRLatchRecord(info int32) {}
func (p *Page) AddWLatchRecord(info int32)    {}
func (p *Page) RemoveWLatchRecord(info int32) {}
