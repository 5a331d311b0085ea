package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Outcome classifica o resultado de uma troca HTTP.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeClientError      Outcome = "client_error"
	OutcomeServerError      Outcome = "server_error"
	OutcomeTransportFailure Outcome = "transport_failure"
)

// Classify mapeia um status HTTP para o Outcome correspondente.
// Qualquer status fora de 2xx e 4xx é tratado como erro do servidor.
func Classify(status int) Outcome {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status >= 400 && status < 500:
		return OutcomeClientError
	default:
		return OutcomeServerError
	}
}

// Response é uma resposta 2xx da API.
type Response struct {
	StatusCode int
	Body       []byte
	Outcome    Outcome
	RequestID  string
	// Cached indica que o corpo veio do cache de respostas.
	Cached bool
}

// Decode interpreta o corpo JSON em v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("resposta não é um JSON válido: %w", err)
	}
	return nil
}

// JSON devolve o corpo como estrutura genérica (map, slice, string...).
// Corpo vazio resulta em nil.
func (r *Response) JSON() (interface{}, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
