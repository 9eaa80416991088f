// Package assert provides a single invariant check, used in place of
// returning an error for conditions that indicate a logic bug rather than
// bad input.
package assert

import "github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/oerror"

// IsTrue panics with a formatted oerror.Error if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
