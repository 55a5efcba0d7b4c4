package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrEmptyToken   = errors.New("server returned no access token")
)

// StatusError is a response with a non-2xx HTTP status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// ResultError is a 2xx response whose envelope carries a non-zero result code.
type ResultError struct {
	Code    int
	Message string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("result code %d: %s", e.Code, e.Message)
}
