package catalog_interface

import "github.com/opendb/relstore/storage/index"

type CatalogInterface interface {
	GetRollbackNeededIndexes(map[uint32][]index.Index, uint32) []index.Index
}
