package executors

import (
	"testing"

	"github.com/opendb/relstore/catalog"
	"github.com/opendb/relstore/execution/expression"
	"github.com/opendb/relstore/execution/plans"
	"github.com/opendb/relstore/storage/table/column"
	"github.com/opendb/relstore/storage/table/schema"
	"github.com/opendb/relstore/types"

	testingpkg "github.com/opendb/relstore/testing"
)

type Column struct {
	Name string
	Kind types.TypeID
}

// ColumnIdx is a Column that additionally says whether an index should be
// built over it, for exercising index-backed scans.
type ColumnIdx struct {
	Name     string
	Kind     types.TypeID
	HasIndex bool
}

type Predicate struct {
	LeftColumn  string
	Operator    expression.ComparisonType
	RightValue  interface{}
}

type Assertion struct {
	Column string
	Exp    interface{}
}

type SeqScanTestCase struct {
	Description     string
	ExecutionEngine *ExecutionEngine
	ExecutorContext *ExecutorContext
	TableMetadata   *catalog.TableMetadata
	Columns         []Column
	Predicate       Predicate
	Asserts         []Assertion
	TotalHits       uint32
}

type HashIndexScanTestCase struct {
	Description     string
	ExecutionEngine *ExecutionEngine
	ExecutorContext *ExecutorContext
	TableMetadata   *catalog.TableMetadata
	Columns         []ColumnIdx
	Predicate       Predicate
	Asserts         []Assertion
	TotalHits       uint32
}

// valueFromIF builds a types.Value out of a raw Go int/string, used to
// turn test-table literals into comparable index/predicate values.
func valueFromIF(v interface{}) types.Value {
	switch tv := v.(type) {
	case int:
		return types.NewInteger(int32(tv))
	case int32:
		return types.NewInteger(tv)
	case string:
		return types.NewVarchar(tv)
	}
	panic("valueFromIF: unsupported value type")
}

func ExecuteSeqScanTestCase(t *testing.T, testCase SeqScanTestCase) {
	columns := []*column.Column{}
	for _, c := range testCase.Columns {
		columns = append(columns, column.NewColumn(c.Name, c.Kind, false))
	}
	outSchema := schema.NewSchema(columns)

	tableSchema := testCase.TableMetadata.Schema()
	leftColIdx := tableSchema.GetColIndex(testCase.Predicate.LeftColumn)
	leftColType := tableSchema.GetColumn(leftColIdx).GetType()
	rightVal := valueFromIF(testCase.Predicate.RightValue)

	predicate := expression.NewComparison(
		expression.NewColumnValue(0, leftColIdx, leftColType),
		expression.NewConstantValue(rightVal, rightVal.ValueType()),
		testCase.Predicate.Operator,
		types.Boolean)

	seqPlan := plans.NewSeqScanPlanNode(outSchema, predicate, testCase.TableMetadata.OID())

	results := testCase.ExecutionEngine.Execute(seqPlan, testCase.ExecutorContext)

	testingpkg.Equals(t, testCase.TotalHits, uint32(len(results)))
	for _, assert := range testCase.Asserts {
		colIndex := outSchema.GetColIndex(assert.Column)
		expected := valueFromIF(assert.Exp)
		testingpkg.Assert(t, expected.CompareEquals(results[0].GetValue(outSchema, colIndex)),
			"value of column %s did not match expected value", assert.Column)
	}
}

func ExecuteHashIndexScanTestCase(t *testing.T, testCase HashIndexScanTestCase) {
	columns := []*column.Column{}
	for _, c := range testCase.Columns {
		columns = append(columns, column.NewColumn(c.Name, c.Kind, c.HasIndex))
	}
	outSchema := schema.NewSchema(columns)

	tableSchema := testCase.TableMetadata.Schema()
	leftColIdx := tableSchema.GetColIndex(testCase.Predicate.LeftColumn)
	leftColType := tableSchema.GetColumn(leftColIdx).GetType()
	rightVal := valueFromIF(testCase.Predicate.RightValue)

	predicate := expression.NewComparisonAsComparison(
		expression.NewColumnValue(0, leftColIdx, leftColType),
		expression.NewConstantValue(rightVal, rightVal.ValueType()),
		testCase.Predicate.Operator,
		types.Boolean)

	hashScanPlan := plans.NewHashScanIndexPlanNode(outSchema, predicate, testCase.TableMetadata.OID())

	results := testCase.ExecutionEngine.Execute(hashScanPlan, testCase.ExecutorContext)

	testingpkg.Equals(t, testCase.TotalHits, uint32(len(results)))
	for _, assert := range testCase.Asserts {
		colIndex := outSchema.GetColIndex(assert.Column)
		expected := valueFromIF(assert.Exp)
		testingpkg.Assert(t, expected.CompareEquals(results[0].GetValue(outSchema, colIndex)),
			"value of column %s did not match expected value", assert.Column)
	}
}
