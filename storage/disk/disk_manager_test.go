package disk

import (
	"bytes"
	"testing"

	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/types"
)

func TestReadWritePage(t *testing.T) {
	dm := NewDiskManagerImpl("test.db")
	defer dm.ShutDown()

	data := make([]byte, common.PageSize)
	copy(data, "A test string.")
	buf := make([]byte, common.PageSize)

	pid := dm.AllocatePage()
	if err := dm.WritePage(pid, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := dm.ReadPage(pid, buf); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.Equal(data, buf) {
		t.Fatal("read back different bytes than were written")
	}
	if dm.GetNumWrites() != 1 {
		t.Fatalf("GetNumWrites = %d, want 1", dm.GetNumWrites())
	}
}

func TestReadDeallocatedPage(t *testing.T) {
	dm := NewDiskManagerImpl("test.db")
	defer dm.ShutDown()

	pid := dm.AllocatePage()
	dm.WritePage(pid, make([]byte, common.PageSize))
	dm.DeallocatePage(pid)

	if err := dm.ReadPage(pid, make([]byte, common.PageSize)); err != types.ErrDeallocatedPage {
		t.Fatalf("ReadPage on deallocated page returned %v, want ErrDeallocatedPage", err)
	}
}

func TestAllocatePageReusesDeallocatedSpace(t *testing.T) {
	dm := NewDiskManagerImpl("test.db")
	defer dm.ShutDown()

	first := dm.AllocatePage()
	dm.WritePage(first, make([]byte, common.PageSize))
	dm.DeallocatePage(first)

	sizeBefore := dm.Size()
	second := dm.AllocatePage()
	data := make([]byte, common.PageSize)
	copy(data, "reused space")
	if err := dm.WritePage(second, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	buf := make([]byte, common.PageSize)
	if err := dm.ReadPage(second, buf); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.Equal(data, buf) {
		t.Fatal("reused page did not read back the bytes just written")
	}
	if dm.Size() > sizeBefore {
		t.Fatalf("backing size grew on reuse: before=%d after=%d", sizeBefore, dm.Size())
	}
}

func TestWriteReadLog(t *testing.T) {
	dm := NewDiskManagerImpl("test.db")
	defer dm.ShutDown()

	record := []byte("log record payload")
	dm.WriteLog(record)

	buf := make([]byte, len(record))
	n, ok := dm.ReadLog(buf, 0)
	if !ok {
		t.Fatal("ReadLog reported no data after WriteLog")
	}
	if int(n) != len(record) || !bytes.Equal(buf, record) {
		t.Fatalf("ReadLog returned %q, want %q", buf[:n], record)
	}

	if _, ok := dm.ReadLog(buf, int32(dm.GetLogFileSize())); ok {
		t.Fatal("ReadLog at end of file should report false")
	}
}
