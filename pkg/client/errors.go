package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequest matches every failure returned by the client, whether the
// request never completed or the backend answered with a non-2xx status.
var ErrRequest = errors.New("daybook: request failed")

// Error describes a failed backend call. StatusCode is zero when no response
// was received.
type Error struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s %s: HTTP %d: %v", e.Op, e.Method, e.Path, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("%s: %s %s: HTTP %d", e.Op, e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRequest) match any *Error.
func (e *Error) Is(target error) bool { return target == ErrRequest }

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }
