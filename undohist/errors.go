package undohist

import "github.com/libresprite/undohist/undoerr"

// undoFailure reports a category-1/2 failure (spec.md §7): a violated
// encoder precondition, or a live-object type/shape mismatch during
// inversion.
func undoFailure(op, reason string) error {
	return undoerr.New("undohist: "+op, reason)
}

func undoFailureWrap(cause error, op, reason string) error {
	return undoerr.Wrap(cause, "undohist: "+op, reason)
}
