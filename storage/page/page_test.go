// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"testing"

	testingutils "github.com/opendb/relstore/testing/testing_assert"
	"github.com/opendb/relstore/types"
)

func TestNewPage(t *testing.T) {
	p := NewEmpty(types.PageID(0))

	testingutils.Equals(t, types.PageID(0), p.GetPageId())
	testingutils.Equals(t, int32(1), p.PinCount())
	p.IncPinCount()
	testingutils.Equals(t, int32(2), p.PinCount())
	p.DecPinCount()
	p.DecPinCount()
	testingutils.Equals(t, int32(0), p.PinCount())
	p.DecPinCount()
	testingutils.Equals(t, int32(0), p.PinCount())
	testingutils.Equals(t, false, p.IsDirty())
	p.SetIsDirty(true)
	testingutils.Equals(t, true, p.IsDirty())
	copy(p.Data(), []byte{'H', 'E', 'L', 'L', 'O'})
	testingutils.Equals(t, byte('H'), p.Data()[0])
	testingutils.Equals(t, byte('O'), p.Data()[4])
}

func TestEmptyPage(t *testing.T) {
	p := NewEmpty(types.PageID(0))

	testingutils.Equals(t, types.PageID(0), p.GetPageId())
	testingutils.Equals(t, int32(1), p.PinCount())
	testingutils.Equals(t, false, p.IsDirty())
}

func TestPageLSN(t *testing.T) {
	p := NewEmpty(types.PageID(1))

	testingutils.Equals(t, types.LSN(0), p.GetLSN())
	p.SetLSN(types.LSN(42))
	testingutils.Equals(t, types.LSN(42), p.GetLSN())
}
