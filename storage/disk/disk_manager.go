package disk

import (
	"github.com/opendb/relstore/types"
)

// DiskManager is responsible for moving pages and log records between the
// buffer pool / log manager and persistent (or, here, memfile-backed)
// storage.
type DiskManager interface {
	ReadPage(types.PageID, []byte) error
	WritePage(types.PageID, []byte) error
	AllocatePage() types.PageID
	DeallocatePage(types.PageID)
	GetNumWrites() uint64
	ShutDown()
	Size() int64

	WriteLog(logData []byte)
	ReadLog(logData []byte, offset int32) (readBytes uint32, ok bool)
	GetLogFileSize() int64
}
