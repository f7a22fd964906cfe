// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing

import (
	"reflect"
	"testing"

	"github.com/opendb/relstore/types"
)

// Equals fails the test with a diff-style message if want != got.
func Equals(t *testing.T, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("\ngot:  %#v\nwant: %#v", got, want)
	}
}

// Ok fails the test if err is non-nil.
func Ok(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Assert fails the test with msg if condition is false.
func Assert(t *testing.T, condition bool, msg string, args ...interface{}) {
	t.Helper()
	if !condition {
		t.Fatalf(msg, args...)
	}
}

// GetValue converts a raw Go literal used in a test table into the
// types.Value it represents.
func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case float32:
		value = types.NewFloat(v)
	case string:
		value = types.NewVarchar(v)
	case bool:
		value = types.NewBoolean(v)
	case *types.Value:
		return *v
	}
	return
}

// GetValueType returns the TypeID that GetValue would build for data.
func GetValueType(data interface{}) types.TypeID {
	switch v := data.(type) {
	case int, int32:
		return types.Integer
	case float32:
		return types.Float
	case string:
		return types.Varchar
	case bool:
		return types.Boolean
	case *types.Value:
		return v.ValueType()
	}
	panic("GetValueType: unsupported value type")
}
