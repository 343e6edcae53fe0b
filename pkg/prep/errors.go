package prep

import (
	"errors"
	"fmt"
)

// LoadError reports an input file that is missing, unreadable or not tabular.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a cell that cannot be interpreted under the chosen
// strategy. Row is -1 when the failure is not tied to a single cell.
type ParseError struct {
	Op     string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: column %s: %v", e.Op, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: column %s row %d value %q: %v", e.Op, e.Column, e.Row, e.Value, e.Err)
}
func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports an operator request that does not fit the
// current frame. It is always raised before any mutation.
type ValidationError struct {
	Op     string
	Column string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: column %s: %s", e.Op, e.Column, e.Msg)
}

// ExportError reports a destination that could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }

func Invalid(op, column, format string, args ...any) error {
	return &ValidationError{Op: op, Column: column, Msg: fmt.Sprintf(format, args...)}
}

func IsLoad(err error) bool {
	var e *LoadError
	return errors.As(err, &e)
}

func IsParse(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsExport(err error) bool {
	var e *ExportError
	return errors.As(err, &e)
}

// Recoverable reports whether the operator can be asked again after err.
func Recoverable(err error) bool {
	return IsParse(err) || IsValidation(err) || IsExport(err)
}
