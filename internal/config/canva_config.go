package config

// CanvaConfig carries everything needed to talk to the Canva Connect API
// and its OAuth endpoints. The client secret must never reach a client-facing
// response.
type CanvaConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAuthorizationURL() string
	GetTokenURL() string
	GetAPIBaseURL() string
	GetRedirectURI() string
	GetScopes() string
}

type Canva struct{}

var _ CanvaConfig = Canva{}

func (Canva) GetClientID() string {
	return GetEnv("CANVA_CLIENT_ID", "")
}

func (Canva) GetClientSecret() string {
	return GetEnv("CANVA_CLIENT_SECRET", "")
}

func (Canva) GetAuthorizationURL() string {
	return GetEnv("CANVA_AUTHORIZATION_URL", "https://www.canva.com/api/oauth/authorize")
}

func (Canva) GetTokenURL() string {
	return GetEnv("CANVA_TOKEN_URL", "https://api.canva.com/rest/v1/oauth/token")
}

func (Canva) GetAPIBaseURL() string {
	return GetEnv("CANVA_API_BASE_URL", "https://api.canva.com/rest/v1")
}

func (Canva) GetRedirectURI() string {
	return GetEnv("CANVA_REDIRECT_URI", "http://127.0.0.1:8080/callback")
}

// GetScopes returns the space-delimited OAuth scopes:
// design:meta:read to list designs, design:content:read to export them.
func (Canva) GetScopes() string {
	return GetEnv("CANVA_SCOPES", "design:meta:read design:content:read")
}
