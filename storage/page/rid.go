package page

import "github.com/opendb/relstore/types"

// RID is the record identifier of a tuple: the page it lives on plus its
// slot number within that page.
type RID struct {
	pageID  types.PageID
	slotNum uint32
}

func NewRID(pageID types.PageID, slot uint32) RID {
	return RID{pageID, slot}
}

func (r *RID) Set(pageID types.PageID, slot uint32) {
	r.pageID = pageID
	r.slotNum = slot
}

func (r RID) GetPageId() types.PageID {
	return r.pageID
}

func (r RID) GetSlot() uint32 {
	return r.slotNum
}

func (r RID) Equals(other RID) bool {
	return r.pageID == other.pageID && r.slotNum == other.slotNum
}
