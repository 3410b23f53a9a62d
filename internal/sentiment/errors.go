package sentiment

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrArgmaxOnEmpty  = errors.New("cannot pick extremal post from an empty dataset")
	ErrInvalidScore   = errors.New("scorer returned NaN")
)

// MalformedInputError names the post whose text field is absent.
type MalformedInputError struct {
	Index int
	Row   int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: post %d (row %d) has no text", ErrMalformedInput, e.Index, e.Row)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
