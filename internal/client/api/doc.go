// Package api is the HTTP client for the diplomadesk backend.
//
// Every response is wrapped in the envelope
//
//	{"resultCode": 0, "message": "", "data": ...}
//
// A non-2xx status is returned as *StatusError (401 also matches
// ErrUnauthorized), a non-zero resultCode as *ResultError, and a failure to
// reach the server wraps ErrUnavailable.
//
// The client does not manage tokens. Bearer headers and 401 recovery are the
// job of the http.Client's transport; see package transport.
package api
