// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_assert

import (
	"reflect"
	"testing"
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
