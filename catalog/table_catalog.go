// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"github.com/opendb/relstore/recovery"
	"github.com/opendb/relstore/storage/access"
	"github.com/opendb/relstore/storage/buffer"
	"github.com/opendb/relstore/storage/index"
	"github.com/opendb/relstore/storage/table/column"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
	"github.com/opendb/relstore/types"

	"github.com/golang-collections/collections/set"
)

// TableCatalogPageId indicates the page where the table catalog can be found
// The first page is reserved for the table catalog
const TableCatalogPageId = 0

// ColumnsCatalogPageId indicates the page where the columns catalog can be found
// The second page is reserved for the columns catalog
const ColumnsCatalogPageId = 1

const ColumnsCatalogOID = 0

// Catalog is a non-persistent catalog that is designed for the executor to use.
// It handles table creation and table lookup
type Catalog struct {
	bpm          *buffer.BufferPoolManager
	tableIds     map[uint32]*TableMetadata
	tableNames   map[string]*TableMetadata
	names        *set.Set // registry of every table and index name in use, for duplicate checks
	nextTableId  uint32
	tableHeap    *access.TableHeap
	Log_manager  *recovery.LogManager
	Lock_manager *access.LockManager
}

// BootstrapCatalog bootstrap the systems' catalogs on the first database initialization
func BootstrapCatalog(bpm *buffer.BufferPoolManager, log_manager *recovery.LogManager, lock_manager *access.LockManager, txn *access.Transaction) *Catalog {
	tableCatalogHeap := access.NewTableHeap(bpm, log_manager, lock_manager, txn)
	tableCatalog := &Catalog{bpm, make(map[uint32]*TableMetadata), make(map[string]*TableMetadata), set.New(), 0, tableCatalogHeap, log_manager, lock_manager}
	tableCatalog.CreateTable("columns_catalog", ColumnsCatalogSchema(), txn)
	return tableCatalog
}

// GetCatalog get all information about tables and columns from disk and put it on memory
func GetCatalog(bpm *buffer.BufferPoolManager, log_manager *recovery.LogManager, lock_manager *access.LockManager, txn *access.Transaction) *Catalog {
	tableCatalogHeapIt := access.InitTableHeap(bpm, TableCatalogPageId, log_manager, lock_manager).Iterator(txn)

	tableIds := make(map[uint32]*TableMetadata)
	tableNames := make(map[string]*TableMetadata)

	for tuple := tableCatalogHeapIt.Current(); !tableCatalogHeapIt.End(); tuple = tableCatalogHeapIt.Next() {
		oid := tuple.GetValue(TableCatalogSchema(), TableCatalogSchema().GetColIndex("oid")).ToInteger()
		name := tuple.GetValue(TableCatalogSchema(), TableCatalogSchema().GetColIndex("name")).ToVarchar()
		firstPage := tuple.GetValue(TableCatalogSchema(), TableCatalogSchema().GetColIndex("first_page")).ToInteger()

		columns := []*column.Column{}
		columnsCatalogHeapIt := access.InitTableHeap(bpm, ColumnsCatalogPageId, log_manager, lock_manager).Iterator(txn)
		for tuple := columnsCatalogHeapIt.Current(); !columnsCatalogHeapIt.End(); tuple = columnsCatalogHeapIt.Next() {
			tableOid := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("table_oid")).ToInteger()
			if tableOid != oid {
				continue
			}
			columnType := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("type")).ToInteger()
			columnName := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("name")).ToVarchar()
			//fixedLength := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("fixed_length")).ToInteger()
			//variableLength := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("variable_length")).ToInteger()
			//columnOffset := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("offset")).ToInteger()
			hasIndex := tuple.GetValue(ColumnsCatalogSchema(), ColumnsCatalogSchema().GetColIndex("has_index")).ToInteger() != 0

			columns = append(columns, column.NewColumn(columnName, types.TypeID(columnType), hasIndex))
		}

		tableMetadata := &TableMetadata{
			schema:  schema.NewSchema(columns),
			name:    name,
			table:   access.InitTableHeap(bpm, types.PageID(firstPage), log_manager, lock_manager),
			oid:     uint32(oid),
			indexes: make(map[int]index.Index),
		}

		tableIds[uint32(oid)] = tableMetadata
		tableNames[name] = tableMetadata
	}

	names := set.New()
	for name := range tableNames {
		names.Insert(name)
	}

	return &Catalog{bpm, tableIds, tableNames, names, 1, access.InitTableHeap(bpm, 0, log_manager, lock_manager), log_manager, lock_manager}

}

func (c *Catalog) GetTableByName(table string) *TableMetadata {
	if !c.names.Has(table) {
		return nil
	}
	if table, ok := c.tableNames[table]; ok {
		return table
	}
	return nil
}

func (c *Catalog) GetTableByOID(oid uint32) *TableMetadata {
	if table, ok := c.tableIds[oid]; ok {
		return table
	}
	return nil
}

// CreateTable creates a new table and return its metadata
func (c *Catalog) CreateTable(name string, schema *schema.Schema, txn *access.Transaction) *TableMetadata {
	if c.names.Has(name) {
		return nil
	}

	oid := c.nextTableId
	c.nextTableId++

	tableHeap := access.NewTableHeap(c.bpm, c.Log_manager, c.Lock_manager, txn)
	tableMetadata := &TableMetadata{
		schema:  schema,
		name:    name,
		table:   tableHeap,
		oid:     oid,
		indexes: make(map[int]index.Index),
	}

	c.tableIds[oid] = tableMetadata
	c.tableNames[name] = tableMetadata
	c.names.Insert(name)
	c.InsertTable(tableMetadata, txn)

	for i, col := range schema.GetColumns() {
		if !col.HasIndex() {
			continue
		}
		indexName := name + "." + col.GetColumnName()
		indexMeta := index.NewIndexMetadata(indexName, name, schema, uint32(i))
		idx, err := index.NewHashTableIndex(indexMeta, c.bpm)
		if err != nil {
			panic(err)
		}
		tableMetadata.SetIndex(i, idx)
		c.names.Insert(indexName)
	}

	return tableMetadata
}

func (c *Catalog) InsertTable(tableMetadata *TableMetadata, txn *access.Transaction) {
	row := make([]types.Value, 0)

	row = append(row, types.NewInteger(int32(tableMetadata.oid)))
	row = append(row, types.NewVarchar(tableMetadata.name))
	row = append(row, types.NewInteger(int32(tableMetadata.table.GetFirstPageId())))
	first_tuple := tuple.NewTupleFromSchema(row, TableCatalogSchema())

	c.tableHeap.InsertTuple(first_tuple, txn)
	for _, column := range tableMetadata.schema.GetColumns() {
		row := make([]types.Value, 0)
		row = append(row, types.NewInteger(int32(tableMetadata.oid)))
		row = append(row, types.NewInteger(int32(column.GetType())))
		row = append(row, types.NewVarchar(column.GetColumnName()))
		row = append(row, types.NewInteger(int32(column.FixedLength())))
		row = append(row, types.NewInteger(int32(column.VariableLength())))
		row = append(row, types.NewInteger(int32(column.GetOffset())))
		hasIndexInt := int32(0)
		if column.HasIndex() {
			hasIndexInt = 1
		}
		row = append(row, types.NewInteger(hasIndexInt))
		new_tuple := tuple.NewTupleFromSchema(row, ColumnsCatalogSchema())

		c.tableIds[ColumnsCatalogOID].Table().InsertTuple(new_tuple, txn)
	}
}

// GetRollbackNeededIndexes returns every index registered on table oid,
// memoizing the lookup in cache so a multi-record abort doesn't re-walk
// the table's schema for each write record it rolls back.
func (c *Catalog) GetRollbackNeededIndexes(cache map[uint32][]index.Index, oid uint32) []index.Index {
	if cached, ok := cache[oid]; ok {
		return cached
	}
	tableMetadata := c.GetTableByOID(oid)
	if tableMetadata == nil {
		return nil
	}
	indexes := make([]index.Index, 0, len(tableMetadata.indexes))
	for _, idx := range tableMetadata.indexes {
		indexes = append(indexes, idx)
	}
	cache[oid] = indexes
	return indexes
}
