package auth

// TokenSet is the durable artifact of a completed authorization flow.
//
// ExpiresIn is kept as reported by the server at issuance time rather than
// converted to an absolute deadline; expiry is detected reactively via HTTP
// 401 during API use, not predicted.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}
