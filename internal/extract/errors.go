package extract

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindParse  Kind = "parse"
	KindSchema Kind = "schema"
)

var (
	ErrParse  = errors.New("parse error")
	ErrSchema = errors.New("schema error")
)

// Error is the classified failure returned by Extract. It unwraps to
// ErrParse or ErrSchema so callers can use errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Unwrap(), e.Message)
}

func (e *Error) Unwrap() error {
	if e.Kind == KindSchema {
		return ErrSchema
	}
	return ErrParse
}

// KindOf reports the extraction kind of err, if err came from Extract.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
