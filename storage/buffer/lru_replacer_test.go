package buffer

import (
	"testing"

	testingutils "github.com/opendb/relstore/testing/testing_assert"
)

func TestLRUReplacerVictimOrder(t *testing.T) {
	replacer := NewLRUReplacer(7)

	for i := FrameID(1); i <= 6; i++ {
		replacer.Unpin(i)
	}
	replacer.Unpin(1)
	replacer.Pin(1)
	replacer.Unpin(4)

	testingutils.Equals(t, uint32(5), replacer.Size())

	// Pin(1) removes frame 1 from the victim pool entirely, so it cannot be
	// chosen afterward; the remaining pool is oldest-unpinned-first: 2,3,4.
	for _, want := range []FrameID{2, 3, 4} {
		got := replacer.Victim()
		testingutils.Assert(t, got != nil, "expected a victim, got none")
		testingutils.Equals(t, want, *got)
	}

	testingutils.Equals(t, uint32(2), replacer.Size())
}

func TestLRUReplacerVictimOnEmptyReturnsNil(t *testing.T) {
	replacer := NewLRUReplacer(4)
	testingutils.Assert(t, replacer.Victim() == nil, "expected nil victim from an empty replacer")
}

func TestLRUReplacerPinRemovesFromVictimPool(t *testing.T) {
	replacer := NewLRUReplacer(4)
	replacer.Unpin(1)
	replacer.Unpin(2)
	replacer.Pin(1)

	testingutils.Equals(t, uint32(1), replacer.Size())
	got := replacer.Victim()
	testingutils.Assert(t, got != nil, "expected a victim")
	testingutils.Equals(t, FrameID(2), *got)
}

func TestLRUReplacerUnpinEvictsTailWhenFull(t *testing.T) {
	replacer := NewLRUReplacer(2)
	replacer.Unpin(1)
	replacer.Unpin(2)
	// replacer is at capacity; unpinning a third frame evicts frame 1 (the
	// tail) before pushing frame 3 to the front, per spec.md §9 note 1.
	replacer.Unpin(3)

	testingutils.Equals(t, uint32(2), replacer.Size())
	first := replacer.Victim()
	testingutils.Assert(t, first != nil, "expected a victim")
	testingutils.Equals(t, FrameID(2), *first)
}
