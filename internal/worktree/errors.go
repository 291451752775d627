package worktree

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Tree mutation matches exactly one
// of them through errors.Is.
var (
	// ErrStructural reports a schema violation: wrong child category,
	// children kind or facet type.
	ErrStructural = errors.New("structural error")

	// ErrLookup reports an unknown node, anchor or interactor id.
	ErrLookup = errors.New("lookup error")

	// ErrInvariant reports a request that would break a tree invariant,
	// such as deleting the root or joining nodes of different types.
	ErrInvariant = errors.New("invariant violation")
)

// Error describes a failed tree operation.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("worktree: %s: %s", e.Op, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func structuralf(op, format string, args ...any) error {
	return &Error{Kind: ErrStructural, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func lookupf(op, format string, args ...any) error {
	return &Error{Kind: ErrLookup, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func invariantf(op, format string, args ...any) error {
	return &Error{Kind: ErrInvariant, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func wrapStructural(op, msg string, err error) error {
	return &Error{Kind: ErrStructural, Op: op, Msg: msg, Err: err}
}
