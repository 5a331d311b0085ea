package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NewOAuth2Fetcher cria a função de busca para o fluxo Client Credentials.
//
// O formulário enviado é grant_type=client_credentials, client_id,
// client_secret e scope, todos no corpo (AuthStyleInParams). httpClient
// é o cliente compartilhado com as chamadas à API; nil usa o padrão.
func NewOAuth2Fetcher(httpClient *http.Client) TokenFetcher {
	return func(ctx context.Context, creds Credentials) (string, time.Duration, error) {
		cfg := clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     creds.TokenURL,
			Scopes:       strings.Fields(creds.Scope),
			AuthStyle:    oauth2.AuthStyleInParams,
		}

		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}

		requestedAt := time.Now()
		tok, err := cfg.Token(ctx)
		if err != nil {
			return "", 0, fmt.Errorf("erro ao obter token oauth: %w", err)
		}

		// A biblioteca converte expires_in em Expiry; voltamos para segundos
		var ttl time.Duration
		if !tok.Expiry.IsZero() {
			ttl = tok.Expiry.Sub(requestedAt).Round(time.Second)
		}

		return tok.AccessToken, ttl, nil
	}
}
