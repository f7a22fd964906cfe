package buffer

import (
	"container/list"

	deadlock "github.com/sasha-s/go-deadlock"
)

// FrameID is the type for a buffer pool frame slot index.
type FrameID uint32

// LRUReplacer tracks which frames are eligible for eviction and picks the
// least-recently-unpinned one as victim. A frame only appears in the list
// while it is unpinned; Pin removes it, Unpin (re-)inserts it at the front.
// Ground truth: original_source/src/buffer/lru_replacer.cpp.
type LRUReplacer struct {
	latch    deadlock.Mutex
	maxPages uint32
	list     *list.List
	elements map[FrameID]*list.Element
}

// NewLRUReplacer instantiates a replacer that tracks at most numPages frames.
func NewLRUReplacer(numPages uint32) *LRUReplacer {
	return &LRUReplacer{
		maxPages: numPages,
		list:     list.New(),
		elements: make(map[FrameID]*list.Element),
	}
}

// Victim evicts and returns the least-recently-unpinned frame, or nil if no
// frame is currently evictable.
func (r *LRUReplacer) Victim() *FrameID {
	r.latch.Lock()
	defer r.latch.Unlock()

	back := r.list.Back()
	if back == nil {
		return nil
	}
	frameID := back.Value.(FrameID)
	r.list.Remove(back)
	delete(r.elements, frameID)
	return &frameID
}

// Pin removes frameID from the victim pool: a pinned frame can never be
// chosen as a victim.
func (r *LRUReplacer) Pin(frameID FrameID) {
	r.latch.Lock()
	defer r.latch.Unlock()

	if elem, ok := r.elements[frameID]; ok {
		r.list.Remove(elem)
		delete(r.elements, frameID)
	}
}

// Unpin makes frameID eligible for eviction again, most-recently-used
// first. If the replacer is already tracking its full capacity, the
// least-recently-unpinned frame is dropped first (ground truth's "evict
// from tail while full, then push front" loop).
func (r *LRUReplacer) Unpin(frameID FrameID) {
	r.latch.Lock()
	defer r.latch.Unlock()

	if _, ok := r.elements[frameID]; ok {
		return
	}
	for uint32(r.list.Len()) >= r.maxPages {
		back := r.list.Back()
		if back == nil {
			break
		}
		delete(r.elements, back.Value.(FrameID))
		r.list.Remove(back)
	}
	r.elements[frameID] = r.list.PushFront(frameID)
}

// Size returns the number of frames currently eligible for eviction.
func (r *LRUReplacer) Size() uint32 {
	r.latch.Lock()
	defer r.latch.Unlock()
	return uint32(r.list.Len())
}
