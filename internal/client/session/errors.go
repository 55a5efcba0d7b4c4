package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential is returned by Login for a payload without a
	// usable access token. Nothing is sent to the server.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrSessionExpired means the refresh endpoint rejected the renewal or
	// could not be reached. The session is over.
	ErrSessionExpired = errors.New("session expired")

	// ErrMalformedToken is returned when an access token is not a JWT.
	ErrMalformedToken = errors.New("malformed access token")

	// ErrNoExpiry is returned when a token carries no exp claim.
	ErrNoExpiry = errors.New("access token has no expiry")
)

// errSessionEnded is returned by a renewal that completed after its session
// was logged out or replaced. The renewed token is dropped.
var errSessionEnded = fmt.Errorf("%w: ended during renewal", ErrSessionExpired)
