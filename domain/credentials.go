package domain

// CredentialBundle is one authenticated session: the OAuth token pair plus
// the user it belongs to. Absence of the bundle means "not authenticated".
// The JSON tags match the persisted authUser blob, which mirrors the
// /oauth/token response body.
type CredentialBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}
