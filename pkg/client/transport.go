package client

import (
	"net"
	"net/http"
	"time"
)

const (
	// DefaultConnectTimeout limita o estabelecimento da conexão (TCP + TLS).
	DefaultConnectTimeout = 3050 * time.Millisecond
	// DefaultReadTimeout limita a espera pelos headers da resposta.
	DefaultReadTimeout = 27 * time.Second
)

// NewHTTPClient cria o cliente HTTP compartilhado entre o endpoint de token
// e a API. Os timeouts de conexão e leitura são aplicados no transport, e
// não como um timeout total, para que um servidor lento na resposta não
// seja confundido com um servidor inacessível.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{Transport: transport}
}
