// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	deadlock "github.com/sasha-s/go-deadlock"
)

// ReaderWriterLatch is a short-term physical latch over a page or
// structural field, distinct from a transactional lock (spec.md GLOSSARY).
type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex deadlock.RWMutex
}

// NewRWLatch returns a latch backed by go-deadlock, which reports
// lock-ordering cycles at runtime — useful given the fixed latch order
// (table -> directory -> bucket, pin before latch) spec.md §5 requires.
func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{}
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}
