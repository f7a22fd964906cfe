package common

import (
	"fmt"

	"github.com/devlights/gomy/output"
)

// SHAssert panics with msg if condition is false. It exists for invariants
// that must never break in correct code (BP1/BP2, DR1/DR2, BK1 in spec.md
// §8) — not for expected failure paths, which return errors instead.
func SHAssert(condition bool, msg string) {
	if !condition {
		output.Stderrl("ASSERT FAILED", msg)
		panic(msg)
	}
}

// SHAssertf is SHAssert with a format string.
func SHAssertf(condition bool, format string, args ...interface{}) {
	if !condition {
		SHAssert(false, fmt.Sprintf(format, args...))
	}
}

// SH_Assert is the pre-rename spelling of SHAssert, kept for call sites
// that still use the teacher's original identifier.
func SH_Assert(condition bool, msg string) {
	SHAssert(condition, msg)
}

// Debugf prints a debug trace line when EnableDebug is set. Call sites stay
// in the code permanently (matching the teacher's own ShPrintf idiom)
// rather than being stripped for release builds.
func Debugf(format string, args ...interface{}) {
	if EnableDebug {
		output.Stdoutl("DEBUG", fmt.Sprintf(format, args...))
	}
}
