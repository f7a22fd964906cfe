package disk

import (
	"errors"
	"strings"

	"github.com/dsnet/golib/memfile"
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/opendb/relstore/common"
	"github.com/opendb/relstore/types"
)

// DiskManagerImpl backs a database and its WAL with in-memory files
// (memfile), so the engine never touches the host filesystem. The space of
// deallocated pages is remembered and reused by AllocatePage under a new
// page id, so that a long-running workload does not grow the backing file
// without bound.
type DiskManagerImpl struct {
	db       *memfile.File
	fileName string

	log         *memfile.File
	logFileName string

	nextPageID types.PageID
	numWrites  uint64
	size       int64
	numFlushes uint64

	dbMutex  deadlock.Mutex
	logMutex deadlock.Mutex

	freeList       []types.PageID
	spaceIDConvMap map[types.PageID]types.PageID
	deallocated    map[types.PageID]bool
}

// NewDiskManagerImpl returns a DiskManager instance backed by in-memory
// files. dbFilename and its derived ".log" sibling are names only, used for
// diagnostics — nothing is written to the real filesystem.
func NewDiskManagerImpl(dbFilename string) DiskManager {
	logName := dbFilename
	if i := strings.LastIndex(dbFilename, "."); i >= 0 {
		logName = dbFilename[:i]
	}
	logName += ".log"

	return &DiskManagerImpl{
		db:             memfile.New(nil),
		fileName:       dbFilename,
		log:            memfile.New(nil),
		logFileName:    logName,
		nextPageID:     types.PageID(0),
		spaceIDConvMap: make(map[types.PageID]types.PageID),
		deallocated:    make(map[types.PageID]bool),
	}
}

// ShutDown is a no-op for the in-memory backing; the files are reclaimed by
// the garbage collector once the manager is dropped.
func (d *DiskManagerImpl) ShutDown() {}

// convToSpaceID maps a logical page id to the backing-file offset slot it
// occupies, redirecting newly allocated ids onto space freed by a prior
// DeallocatePage.
func (d *DiskManagerImpl) convToSpaceID(pageID types.PageID) types.PageID {
	if conv, ok := d.spaceIDConvMap[pageID]; ok {
		return conv
	}
	return pageID
}

func (d *DiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	d.dbMutex.Lock()
	defer d.dbMutex.Unlock()

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		return err
	}
	d.numWrites++

	if end := offset + int64(len(pageData)); end > d.size {
		d.size = end
	}
	return nil
}

func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbMutex.Lock()
	defer d.dbMutex.Unlock()

	if d.deallocated[pageID] {
		return types.ErrDeallocatedPage
	}

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	if offset > d.size || offset+int64(len(pageData)) > d.size {
		return errors.New("disk: read past end of file")
	}

	_, err := d.db.ReadAt(pageData, offset)
	return err
}

// AllocatePage hands out the next never-used page id, or reuses the space
// of a page freed by DeallocatePage (spec.md SUPPLEMENTED FEATURES).
func (d *DiskManagerImpl) AllocatePage() types.PageID {
	d.dbMutex.Lock()
	defer d.dbMutex.Unlock()

	ret := d.nextPageID
	if len(d.freeList) > 0 {
		reuse := d.freeList[0]
		d.freeList = d.freeList[1:]
		d.spaceIDConvMap[ret] = reuse
	}
	d.nextPageID++
	return ret
}

// DeallocatePage marks pageID's space reusable by a future AllocatePage and
// makes subsequent reads of pageID fail; the id itself is not handed out again.
func (d *DiskManagerImpl) DeallocatePage(pageID types.PageID) {
	d.dbMutex.Lock()
	defer d.dbMutex.Unlock()

	d.deallocated[pageID] = true
	if conv, ok := d.spaceIDConvMap[pageID]; ok {
		d.freeList = append(d.freeList, conv)
		delete(d.spaceIDConvMap, pageID)
	} else {
		d.freeList = append(d.freeList, pageID)
	}
}

func (d *DiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

func (d *DiskManagerImpl) Size() int64 {
	d.dbMutex.Lock()
	defer d.dbMutex.Unlock()
	return d.size
}

// WriteLog appends logData to the WAL file. Unlike WritePage, this is
// always a sequential append — the log is never overwritten in place.
func (d *DiskManagerImpl) WriteLog(logData []byte) {
	if len(logData) == 0 {
		return
	}
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	d.numFlushes++
	d.log.WriteAt(logData, int64(len(d.log.Bytes())))
}

// ReadLog reads len(logData) bytes starting at offset from the WAL file.
// It reports false once offset reaches the end of the log.
func (d *DiskManagerImpl) ReadLog(logData []byte, offset int32) (uint32, bool) {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	if int64(offset) >= int64(len(d.log.Bytes())) {
		return 0, false
	}
	n, _ := d.log.ReadAt(logData, int64(offset))
	return uint32(n), true
}

func (d *DiskManagerImpl) GetLogFileSize() int64 {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()
	return int64(len(d.log.Bytes()))
}
