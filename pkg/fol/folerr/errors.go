// Package folerr defines the error taxonomy shared by every pkg/fol
// subpackage. Errors are *Error values carrying a Kind, recovered with
// IsKind (errors.As underneath); call sites wrap them with
// github.com/pkg/errors to keep a stack trace from the failing operation
// back to the caller.
package folerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error so callers can branch on recovery policy
// without string-matching messages.
type Kind int

const (
	// InvalidArgument covers malformed input: a non-definite clause where
	// a definite one is required, the empty clause used as an FV-index
	// key, an unrecognised sentence/term variant, or a nil input.
	InvalidArgument Kind = iota
	// InvalidState covers API misuse against an object's lifecycle: reading
	// Result/Proofs before completion, or stepping a completed query.
	InvalidState
	// ResourceExhausted covers a formatter's label set being enumerated
	// past its capacity.
	ResourceExhausted
	// Cancelled covers a cancellation signal observed between steps.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case InvalidState:
		return "invalid_state"
	case ResourceExhausted:
		return "resource_exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by pkg/fol operations. Kind is
// stable across wraps so callers can recover it with errors.As.
type Error struct {
	Kind    Kind
	Op      string // component/operation that raised it, e.g. "unify.TryCreate"
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// New builds a *Error for op/kind and wraps it with a stack trace.
func New(op string, kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)})
}

// IsKind reports whether err, or any error it wraps, is a *Error of the
// given kind. Kind itself is not an error, so errors.Is cannot test it.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// Wrap attaches op/context to an existing error while preserving its Kind
// (if any) for later IsKind checks, mirroring operator-lifecycle-manager's
// pkg/errors.Wrap call-boundary convention.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s", op)
}
