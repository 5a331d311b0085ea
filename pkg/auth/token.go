package auth

import (
	"fmt"
	"time"
)

// Token é o último access token obtido. O valor é imutável: o Manager
// substitui o Token inteiro a cada renovação.
type Token struct {
	AccessToken string
	IssuedAt    time.Time
	TTL         time.Duration
}

// ValidAt informa se o token ainda pode ser usado no instante now.
// Um token vazio nunca é válido.
func (t Token) ValidAt(now time.Time) bool {
	return t.AccessToken != "" && now.Sub(t.IssuedAt) < t.TTL
}

// IsValid é ValidAt com o relógio do sistema.
func (t Token) IsValid() bool {
	return t.ValidAt(time.Now())
}

// ExpiresAt devolve o instante em que o token deixa de ser válido.
func (t Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(t.TTL)
}

// Credentials identifica a aplicação junto ao endpoint de token.
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scope        string
}

// String omite o segredo para que as credenciais possam ir para o log.
func (c Credentials) String() string {
	secret := ""
	if c.ClientSecret != "" {
		secret = "****"
	}
	return fmt.Sprintf("Credentials{ClientID: %q, ClientSecret: %q, TokenURL: %q, Scope: %q}",
		c.ClientID, secret, c.TokenURL, c.Scope)
}
