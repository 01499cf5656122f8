// Package undoerr holds the single error type the undo engine raises for
// unrecoverable failures: a violated encoder precondition, or a live-object
// type/shape mismatch found while inverting a chunk.
//
// Both cases are programmer errors in the caller (the document graph and the
// chunk stream have drifted out of sync) rather than something the engine
// can repair, so there is exactly one error type and no retry path.
package undoerr

import "github.com/pkg/errors"

// Failure reports a precondition violation or a live-object mismatch
// encountered while encoding or inverting an UndoChunk.
type Failure struct {
	// Op names the encoder/inverter that raised the failure, e.g.
	// "undohist: DATA" or "undohist: SET_PALETTE_COLORS".
	Op string

	// Reason is a short, human-readable description of what went wrong.
	Reason string

	cause error
}

func (f *Failure) Error() string {
	if f.Reason == "" {
		return f.Op
	}
	return f.Op + ": " + f.Reason
}

func (f *Failure) Unwrap() error { return f.cause }

// New reports a bare precondition failure with no underlying cause.
func New(op, reason string) error {
	return errors.WithStack(&Failure{Op: op, Reason: reason})
}

// Wrap reports a failure caused by an underlying error, e.g. a type
// assertion that did not hold during object resolution.
func Wrap(cause error, op, reason string) error {
	return errors.WithStack(&Failure{Op: op, Reason: reason, cause: cause})
}

// As reports whether err is (or wraps) an *undoerr.Failure.
func As(err error) (*Failure, bool) {
	f, ok := errors.Cause(err).(*Failure)
	return f, ok
}
