package api

// Paths are the backend routes the client calls.
type Paths struct {
	Login        string `json:"login"`
	RefreshToken string `json:"refresh_token"`
	Logout       string `json:"logout"`
	AccountInfo  string `json:"account_info"`
}

func DefaultPaths() Paths {
	return Paths{
		Login:        "/api/auth/login",
		RefreshToken: "/api/auth/refresh-token",
		Logout:       "/api/auth/logout",
		AccountInfo:  "/api/account/info",
	}
}

// Auth returns the routes that must never trigger a token renewal.
func (p Paths) Auth() []string {
	return []string{p.Login, p.RefreshToken, p.Logout}
}

// withDefaults fills empty routes from DefaultPaths.
func (p Paths) withDefaults() Paths {
	d := DefaultPaths()
	if p.Login == "" {
		p.Login = d.Login
	}
	if p.RefreshToken == "" {
		p.RefreshToken = d.RefreshToken
	}
	if p.Logout == "" {
		p.Logout = d.Logout
	}
	if p.AccountInfo == "" {
		p.AccountInfo = d.AccountInfo
	}
	return p
}
