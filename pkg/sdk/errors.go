package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRecordNotFound is the cause wrapped by NotFound errors.
	ErrRecordNotFound = errors.New("record not found")

	// ErrMalformedID is the cause wrapped when an identifier is not a valid ObjectID.
	ErrMalformedID = errors.New("malformed identifier")
)

type EndorError struct {
	StatusCode  int
	InternalErr error
}

func (e *EndorError) Error() string {
	return fmt.Sprintf("%v", e.InternalErr)
}

func (e *EndorError) Unwrap() error {
	return e.InternalErr
}

// Factories
func NewBadRequestError(err error) *EndorError {
	return &EndorError{StatusCode: http.StatusBadRequest, InternalErr: err}
}

func NewNotFoundError(err error) *EndorError {
	return &EndorError{StatusCode: http.StatusNotFound, InternalErr: err}
}

func NewInternalServerError(err error) *EndorError {
	return &EndorError{StatusCode: http.StatusInternalServerError, InternalErr: err}
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not an EndorError.
func StatusCode(err error) int {
	var endorError *EndorError
	if errors.As(err, &endorError) {
		return endorError.StatusCode
	}
	return http.StatusInternalServerError
}
