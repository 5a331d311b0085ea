package types

// ParamMapping mapeia um parâmetro da requisição para um campo dos dados.
// MapsTo aceita caminho com pontos (ex.: "article.id").
type ParamMapping struct {
	Name   string `json:"name"`
	MapsTo string `json:"maps_to"`
}

// Response para status e body
type Response struct {
	Status int         `json:"status"`
	Body   interface{} `json:"body,omitempty"`
}

// TokenResponse é o corpo devolvido pelo endpoint OAuth.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// OAuthError é o corpo de erro do endpoint OAuth (RFC 6749).
type OAuthError struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}
