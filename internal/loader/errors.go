package loader

import (
	"errors"
	"fmt"
)

// ParseError reports a structure file that could not be read or
// understood. It is recorded against the structure in batch mode and
// never aborts other items.
type ParseError struct {
	Path    string
	Line    int // 1-based line of the defect, 0 when not line-scoped
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func parseErrorf(path string, line int, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Line: line, Message: fmt.Sprintf(format, args...)}
}
