package users

import "time"

type User struct {
	ID           string
	UserName     string
	DisplayName  string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RefreshToken is a server-side refresh session. Only the hash of the
// cookie value is kept.
type RefreshToken struct {
	UserID    string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
