package domain

import "time"

type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ExpiresAt reports when the access token stops being valid, or the zero time
// when the token endpoint did not say.
func (t TokenBundle) ExpiresAt(issuedAt time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// WithRefreshFallback keeps previous when the refresh response omitted a new
// refresh token.
func (t TokenBundle) WithRefreshFallback(previous string) TokenBundle {
	if t.RefreshToken == "" {
		t.RefreshToken = previous
	}
	return t
}
