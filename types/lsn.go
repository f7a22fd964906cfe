package types

import (
	"bytes"
	"encoding/binary"
)

// LSN is a log sequence number assigned to a WAL record.
type LSN int32

// InvalidLSN marks a transaction that has not yet written any log record.
const InvalidLSN = LSN(-1)

// SizeOfLSN is the serialized width of an LSN, in bytes.
const SizeOfLSN = 4

// Serialize casts it to []byte.
func (lsn LSN) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, lsn)
	return buf.Bytes()
}

// NewLSNFromBytes creates an LSN from []byte.
func NewLSNFromBytes(data []byte) (ret LSN) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}
