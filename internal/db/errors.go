// ABOUTME: Error taxonomy for the journal store
// ABOUTME: Maps SQLite constraint failures onto recoverable kinds
package db

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Kind classifies a store error so callers can decide how to present it.
type Kind int

const (
	// KindTransient is a single statement failing inside the engine.
	KindTransient Kind = iota
	// KindInitialization means the store cannot be opened; not continuable.
	KindInitialization
	KindValidation
	KindAlreadyExists
	KindNotFound
	// KindAmbiguous is a partial subject match with several candidates.
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "initialization"
	case KindValidation:
		return "validation"
	case KindAlreadyExists:
		return "already exists"
	case KindNotFound:
		return "not found"
	case KindAmbiguous:
		return "ambiguous"
	default:
		return "transient"
	}
}

// Sentinels for errors.Is checks against an *Error.
var (
	ErrInitialization = errors.New("initialization error")
	ErrValidation     = errors.New("validation error")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrAmbiguous      = errors.New("ambiguous")
	ErrTransient      = errors.New("store error")
)

// Error is returned by every Store operation that does not succeed.
// Its Error() text is meant to be shown to the user as-is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Expected reports whether the error is a normal outcome (duplicate name,
// missing id, bad input) rather than a failure of the engine.
func (e *Error) Expected() bool {
	switch e.Kind {
	case KindValidation, KindAlreadyExists, KindNotFound, KindAmbiguous:
		return true
	}
	return false
}

func (k Kind) sentinel() error {
	switch k {
	case KindInitialization:
		return ErrInitialization
	case KindValidation:
		return ErrValidation
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindNotFound:
		return ErrNotFound
	case KindAmbiguous:
		return ErrAmbiguous
	default:
		return ErrTransient
	}
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindTransient for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

// IsExpected reports whether err is an expected, recoverable outcome.
func IsExpected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Expected()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
