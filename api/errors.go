package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every failed backend call, whatever the cause.
var ErrRequestFailed = errors.New("request failed")

// RequestError describes a failed call. Status is zero when the request
// never got a response.
type RequestError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: HTTP %d: %v", e.Method, e.Path, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }
