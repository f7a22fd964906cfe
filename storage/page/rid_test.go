package page

import (
	"testing"

	testingutils "github.com/opendb/relstore/testing/testing_assert"
	"github.com/opendb/relstore/types"
)

func TestRID(t *testing.T) {
	rid := RID{}
	rid.Set(types.PageID(0), uint32(0))
	testingutils.Equals(t, types.PageID(0), rid.GetPageId())
	testingutils.Equals(t, uint32(0), rid.GetSlot())
}

func TestRIDEquals(t *testing.T) {
	a := NewRID(types.PageID(1), 2)
	b := NewRID(types.PageID(1), 2)
	c := NewRID(types.PageID(1), 3)

	testingutils.Equals(t, true, a.Equals(b))
	testingutils.Equals(t, false, a.Equals(c))
}
