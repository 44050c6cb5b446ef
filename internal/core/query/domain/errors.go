package domain

import (
	"errors"
	"fmt"
)

// Common compile errors.
var (
	// ErrUnsupportedOperator is returned for an operator that is not in the
	// operator table in use.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrInvalidPrimaryKey is returned when a record used as an update or
	// delete target has no primary key value.
	ErrInvalidPrimaryKey = errors.New("invalid primary key")

	// ErrMissingCondition is returned for a delete without any condition.
	ErrMissingCondition = errors.New("missing condition")

	// ErrNoUpdateTarget is returned for an update with nothing to set.
	ErrNoUpdateTarget = errors.New("no update target")

	// ErrUncompilableStatement is returned for a statement of unknown kind.
	ErrUncompilableStatement = errors.New("uncompilable statement")

	ErrUnknownField     = errors.New("unknown field")
	ErrPrimaryKeyUpdate = errors.New("primary key cannot be updated")
	ErrArity            = errors.New("wrong number of values")
	ErrMissingRecord    = errors.New("missing record")
	ErrMissingTable     = errors.New("missing table")
)

// CompileError is a failure to compile a statement.
type CompileError struct {
	Statement string
	Table     string
	Cause     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("compile %s on %s: %v", e.Statement, e.Table, e.Cause)
	}
	return fmt.Sprintf("compile %s: %v", e.Statement, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *CompileError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewCompileError wraps cause. A nil cause yields nil.
func NewCompileError(statement, table string, cause error) error {
	if cause == nil {
		return nil
	}
	var ce *CompileError
	if errors.As(cause, &ce) {
		return cause
	}
	return &CompileError{Statement: statement, Table: table, Cause: cause}
}
