package recovery

import (
	"encoding/binary"

	"github.com/opendb/relstore/storage/page"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"
)

// LogRecordType identifies which of a table page's write operations a log
// record describes.
type LogRecordType int32

const (
	INVALID LogRecordType = iota
	INSERT
	MARKDELETE
	APPLYDELETE
	ROLLBACKDELETE
	UPDATE
	BEGIN
	COMMIT
	ABORT
	// NEWPAGE records creating a new page in a table heap.
	NEWPAGE
)

// HEADER_SIZE is the size in bytes of the fields common to every log
// record: size, LSN, transaction id, previous LSN and log type, each a
// 4-byte value.
//
// For every write operation on a table page a corresponding log record is
// written ahead. Every record shares a 20-byte header:
//
//	---------------------------------------------
//	| size | LSN | transID | prevLSN | LogType |
//	---------------------------------------------
//
// followed by a type-specific payload:
//
//	INSERT / MARKDELETE / APPLYDELETE / ROLLBACKDELETE
//	---------------------------------------------------------------
//	| HEADER | tuple_rid | tuple_size | tuple_data(char[] array) |
//	---------------------------------------------------------------
//
//	UPDATE
//	-----------------------------------------------------------------------------------
//	| HEADER | tuple_rid | tuple_size | old_tuple_data | tuple_size | new_tuple_data |
//	-----------------------------------------------------------------------------------
//
//	NEWPAGE
//	--------------------------
//	| HEADER | prev_page_id |
//	--------------------------
const HEADER_SIZE = 20

// LogRecord is a single write-ahead-log entry. Only the fields relevant to
// its Log_record_type are populated.
type LogRecord struct {
	Size            uint32
	Lsn             types.LSN
	TxnId           types.TxnID
	PrevLsn         types.LSN
	Log_record_type LogRecordType

	// for delete operations (MARKDELETE/APPLYDELETE/ROLLBACKDELETE); the
	// pre-delete tuple is kept for undo.
	Delete_rid   page.RID
	Delete_tuple *tuple.Tuple

	// for insert operations.
	Insert_rid   page.RID
	Insert_tuple *tuple.Tuple

	// for update operations.
	Update_rid page.RID
	Old_tuple  *tuple.Tuple
	New_tuple  *tuple.Tuple

	// for new-page operations.
	Prev_page_id types.PageID
}

// NewLogRecordTxn builds a BEGIN/COMMIT/ABORT record, which carries only
// the common header.
func NewLogRecordTxn(txn_id types.TxnID, prev_lsn types.LSN, log_record_type LogRecordType) *LogRecord {
	return &LogRecord{
		Size:            HEADER_SIZE,
		Lsn:             types.InvalidLSN,
		TxnId:           txn_id,
		PrevLsn:         prev_lsn,
		Log_record_type: log_record_type,
	}
}

// NewLogRecordInsertDelete builds an INSERT, MARKDELETE, APPLYDELETE or
// ROLLBACKDELETE record.
func NewLogRecordInsertDelete(txn_id types.TxnID, prev_lsn types.LSN, log_record_type LogRecordType, rid page.RID, tuple_ *tuple.Tuple) *LogRecord {
	record := &LogRecord{
		Lsn:             types.InvalidLSN,
		TxnId:           txn_id,
		PrevLsn:         prev_lsn,
		Log_record_type: log_record_type,
	}
	if log_record_type == INSERT {
		record.Insert_rid = rid
		record.Insert_tuple = tuple_
	} else {
		record.Delete_rid = rid
		record.Delete_tuple = tuple_
	}
	record.Size = HEADER_SIZE + ridSize + uint32(tuple.TupleSizeOffsetInLogrecord) + tuple_.Size()
	return record
}

// NewLogRecordUpdate builds an UPDATE record holding both the pre- and
// post-image of the tuple.
func NewLogRecordUpdate(txn_id types.TxnID, prev_lsn types.LSN, update_rid page.RID, old_tuple *tuple.Tuple, new_tuple *tuple.Tuple) *LogRecord {
	record := &LogRecord{
		Lsn:             types.InvalidLSN,
		TxnId:           txn_id,
		PrevLsn:         prev_lsn,
		Log_record_type: UPDATE,
		Update_rid:      update_rid,
		Old_tuple:       old_tuple,
		New_tuple:       new_tuple,
	}
	record.Size = HEADER_SIZE + ridSize + 2*uint32(tuple.TupleSizeOffsetInLogrecord) + old_tuple.Size() + new_tuple.Size()
	return record
}

// NewLogRecordNewPage builds a NEWPAGE record.
func NewLogRecordNewPage(txn_id types.TxnID, prev_lsn types.LSN, prev_page_id types.PageID) *LogRecord {
	return &LogRecord{
		Size:            HEADER_SIZE + pageIDSize,
		Lsn:             types.InvalidLSN,
		TxnId:           txn_id,
		PrevLsn:         prev_lsn,
		Log_record_type: NEWPAGE,
		Prev_page_id:    prev_page_id,
	}
}

// ridSize and pageIDSize are the on-the-wire sizes of page.RID and
// types.PageID, both serialized as two/one little-endian int32 fields.
const ridSize = 8
const pageIDSize = 4

// GetLogHeaderData serializes the 20-byte common header.
func (log_record *LogRecord) GetLogHeaderData() []byte {
	buf := make([]byte, HEADER_SIZE)
	binary.LittleEndian.PutUint32(buf[0:4], log_record.Size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(log_record.Lsn))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(log_record.TxnId))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(log_record.PrevLsn))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(log_record.Log_record_type))
	return buf
}

func (log_record *LogRecord) GetDeleteRID() page.RID   { return log_record.Delete_rid }
func (log_record *LogRecord) GetInsertTuple() *tuple.Tuple { return log_record.Insert_tuple }
func (log_record *LogRecord) GetInsertRID() page.RID   { return log_record.Insert_rid }
func (log_record *LogRecord) GetNewPageRecord() types.PageID { return log_record.Prev_page_id }
func (log_record *LogRecord) GetSize() uint32          { return log_record.Size }
func (log_record *LogRecord) GetLSN() types.LSN        { return log_record.Lsn }
func (log_record *LogRecord) GetTxnId() types.TxnID    { return log_record.TxnId }
func (log_record *LogRecord) GetPrevLSN() types.LSN    { return log_record.PrevLsn }
func (log_record *LogRecord) GetLogRecordType() LogRecordType { return log_record.Log_record_type }
