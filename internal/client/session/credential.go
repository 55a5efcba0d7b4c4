package session

import (
	"encoding/json"

	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
)

// Profile is the account data returned by the account-info endpoint.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Role        string `json:"role"`
}

// Credential is one authenticated session. Its JSON form is the persisted
// record; Tier is tracked alongside it and never serialized.
type Credential struct {
	AccessToken   string `json:"accessToken"`
	Authenticated bool   `json:"authenticated"`
	Profile

	Tier store.Tier `json:"-"`
}

func (c Credential) marshal() ([]byte, error) {
	return json.Marshal(c)
}

func unmarshalCredential(b []byte) (Credential, error) {
	var c Credential
	err := json.Unmarshal(b, &c)
	return c, err
}

// merge copies the non-empty fields of p over the credential's profile.
func (c *Credential) merge(p Profile) {
	if p.ID != "" {
		c.ID = p.ID
	}
	if p.Username != "" {
		c.Username = p.Username
	}
	if p.DisplayName != "" {
		c.DisplayName = p.DisplayName
	}
	if p.Avatar != "" {
		c.Avatar = p.Avatar
	}
	if p.Role != "" {
		c.Role = p.Role
	}
}
