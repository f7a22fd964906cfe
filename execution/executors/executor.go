package executors

import (
	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/storage/tuple"
)

// Done reports whether an executor has produced its last tuple: Next
// returns (nil, true, nil) once exhausted.
type Done = bool

// Executor executes a plan.
//
// Init initializes this executor. This function must be called before
// Next() is called.
//
// Next produces the next tuple from this executor, along with whether the
// executor is done (in which case the returned tuple is nil).
type Executor interface {
	Init()
	Next() (*tuple.Tuple, Done, error)
	GetOutputSchema() *schema.Schema
	// GetTableMetaData returns the metadata of the table this executor (or,
	// for a pipeline stage, its underlying scan) reads from or writes to.
	GetTableMetaData() *catalog.TableMetadata
}
