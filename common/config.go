// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"time"
)

var CycleDetectionInterval time.Duration
var EnableLogging bool = false
var LogTimeout time.Duration
var EnableDebug bool = false

const (
	// invalid page id
	InvalidPageID = -1
	// invalid transaction id
	InvalidTxnID = -1
	// invalid log sequence number
	InvalidLSN = -1
	// the header page id
	HeaderPageID = 0
	// size of a data page in byte
	PageSize = 4096
	// size of a log buffer in byte, expressed in multiples of PageSize
	LogBufferPoolSize = 32
	LogBufferSize     = (LogBufferPoolSize + 1) * PageSize
	// MaxDepth bounds the extendible hash directory so that its
	// local-depth/bucket-id arrays fit in one page (spec §6).
	MaxDepth = 9
)

type SlotOffset uintptr // slot offset type
