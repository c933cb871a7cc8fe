package document

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// Backend reads and writes one wire format as a node tree.
type Backend interface {
	Format() Format
	Parse(raw []byte) (*Node, error)
	Serialize(root *Node) ([]byte, error)
}

// ParseError wraps malformed backend input.
type ParseError struct {
	Format Format
	// Offset is the byte offset of the failure, -1 when unknown.
	Offset int64
	Err    error
}

// NewParseError wraps err for format f.
func NewParseError(f Format, offset int64, err error) *ParseError {
	return &ParseError{Format: f, Offset: offset, Err: err}
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s %s at offset %d: %v", e.Format, ErrParse, e.Offset, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Format, ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
