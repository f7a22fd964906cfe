package buffer

import (
	"testing"

	"github.com/opendb/relstore/storage/disk"
	testingutils "github.com/opendb/relstore/testing/testing_assert"
	"github.com/opendb/relstore/types"
)

func newTestPool(t *testing.T, poolSize uint32) *BufferPoolManager {
	t.Helper()
	dm := disk.NewDiskManagerImpl("bpm_test.db")
	t.Cleanup(dm.ShutDown)
	return NewBufferPoolManager(poolSize, dm, 1, 0)
}

func TestNewPageThenFetchPage(t *testing.T) {
	bpm := newTestPool(t, 10)

	pg, err := bpm.NewPage()
	testingutils.Ok(t, err)

	copy(pg.Data(), []byte("Hello"))
	pid := pg.GetPageId()
	testingutils.Ok(t, bpm.UnpinPage(pid, true))

	fetched, err := bpm.FetchPage(pid)
	testingutils.Ok(t, err)
	testingutils.Equals(t, byte('H'), fetched.Data()[0])
	testingutils.Ok(t, bpm.UnpinPage(pid, false))
}

func TestBufferPoolFillsThenRejectsNewPage(t *testing.T) {
	poolSize := uint32(4)
	bpm := newTestPool(t, poolSize)

	for i := uint32(0); i < poolSize; i++ {
		pg, err := bpm.NewPage()
		testingutils.Ok(t, err)
		testingutils.Equals(t, types.PageID(i), pg.GetPageId())
	}

	_, err := bpm.NewPage()
	testingutils.Assert(t, err == ErrBufferPoolFull, "expected ErrBufferPoolFull once every frame is pinned, got %v", err)
}

func TestUnpinMakesFrameEvictable(t *testing.T) {
	poolSize := uint32(2)
	bpm := newTestPool(t, poolSize)

	first, err := bpm.NewPage()
	testingutils.Ok(t, err)
	second, err := bpm.NewPage()
	testingutils.Ok(t, err)

	testingutils.Ok(t, bpm.UnpinPage(first.GetPageId(), false))
	testingutils.Ok(t, bpm.UnpinPage(second.GetPageId(), false))

	// both frames free; a third NewPage must evict the least-recently-
	// unpinned one, which is `first`.
	third, err := bpm.NewPage()
	testingutils.Ok(t, err)
	testingutils.Assert(t, third.GetPageId() != first.GetPageId() && third.GetPageId() != second.GetPageId(),
		"NewPage reused a still-mapped page id")

	_, err = bpm.FetchPage(first.GetPageId())
	testingutils.Assert(t, err != nil, "expected FetchPage(first) to miss after eviction")
}

func TestDirtyPageWrittenBackOnEviction(t *testing.T) {
	poolSize := uint32(1)
	bpm := newTestPool(t, poolSize)

	pg, err := bpm.NewPage()
	testingutils.Ok(t, err)
	copy(pg.Data(), []byte("persisted"))
	pid := pg.GetPageId()
	testingutils.Ok(t, bpm.UnpinPage(pid, true))

	// force eviction of pid by requesting a second page into the same,
	// now-full, single-frame pool.
	second, err := bpm.NewPage()
	testingutils.Ok(t, err)
	testingutils.Ok(t, bpm.UnpinPage(second.GetPageId(), false))

	fetched, err := bpm.FetchPage(pid)
	testingutils.Ok(t, err)
	testingutils.Equals(t, byte('p'), fetched.Data()[0])
}

func TestDeletePageRequiresUnpinned(t *testing.T) {
	bpm := newTestPool(t, 4)

	pg, err := bpm.NewPage()
	testingutils.Ok(t, err)
	pid := pg.GetPageId()

	testingutils.Assert(t, bpm.DeletePage(pid) != nil, "DeletePage should refuse a pinned page")

	testingutils.Ok(t, bpm.UnpinPage(pid, false))
	testingutils.Ok(t, bpm.DeletePage(pid))

	_, err = bpm.FetchPage(pid)
	testingutils.Assert(t, err != nil, "expected deleted page to no longer be fetchable")
}
