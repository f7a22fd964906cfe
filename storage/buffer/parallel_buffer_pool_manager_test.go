package buffer

import (
	"testing"

	"github.com/opendb/relstore/storage/disk"
	testingutils "github.com/opendb/relstore/testing/testing_assert"
)

func newTestParallelPool(t *testing.T, numInstances, poolSize uint32) *ParallelBufferPoolManager {
	t.Helper()
	dm := disk.NewDiskManagerImpl("parallel_bpm_test.db")
	t.Cleanup(dm.ShutDown)
	return NewParallelBufferPoolManager(numInstances, poolSize, dm)
}

func TestParallelBufferPoolManagerRoutesAcrossShards(t *testing.T) {
	pbpm := newTestParallelPool(t, 4, 4)
	testingutils.Equals(t, 16, pbpm.GetPoolSize())

	pageIDs := make(map[int]bool)
	for i := 0; i < 8; i++ {
		pg, err := pbpm.NewPage()
		testingutils.Ok(t, err)
		copy(pg.Data(), []byte("shard"))
		pageIDs[int(pg.GetPageId())] = true
		testingutils.Ok(t, pbpm.UnpinPage(pg.GetPageId(), true))
	}
	// NewPage round-robins across the 4 shards, so 8 allocations must not
	// all land on the same underlying instance.
	testingutils.Assert(t, len(pageIDs) == 8, "expected 8 distinct page ids, got %d", len(pageIDs))
}

func TestParallelBufferPoolManagerFetchAndFlush(t *testing.T) {
	pbpm := newTestParallelPool(t, 2, 4)

	pg, err := pbpm.NewPage()
	testingutils.Ok(t, err)
	copy(pg.Data(), []byte("hello"))
	pid := pg.GetPageId()
	testingutils.Ok(t, pbpm.UnpinPage(pid, true))

	fetched, err := pbpm.FetchPage(pid)
	testingutils.Ok(t, err)
	testingutils.Equals(t, byte('h'), fetched.Data()[0])
	testingutils.Ok(t, pbpm.UnpinPage(pid, false))

	pbpm.FlushAllPages()

	testingutils.Ok(t, pbpm.DeletePage(pid))
}
