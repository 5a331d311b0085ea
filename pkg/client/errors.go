package client

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indica uma chamada malformada (corpo nulo, rota vazia).
// A falha é sempre local: nada é enviado pela rede.
var ErrInvalidArgument = errors.New("argumento inválido")

// ErrClosed é retornado por chamadas feitas após Close.
var ErrClosed = errors.New("cliente encerrado")

// maxErrorBody limita o corpo incluído na mensagem de erro.
const maxErrorBody = 512

// APIError representa uma resposta não-2xx ou uma falha de transporte.
// Para falhas de transporte StatusCode é zero e Err contém a causa.
type APIError struct {
	StatusCode int
	Body       string
	Route      string
	Outcome    Outcome
	Err        error
}

func (e *APIError) Error() string {
	if e.Outcome == OutcomeTransportFailure {
		return fmt.Sprintf("api: falha de transporte em '%s': %v", e.Route, e.Err)
	}
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("api: erro %d (%s) em '%s': %s", e.StatusCode, e.Outcome, e.Route, body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Temporary informa se vale a pena o chamador tentar de novo.
// O cliente nunca repete chamadas à API por conta própria.
func (e *APIError) Temporary() bool {
	return e.Outcome == OutcomeServerError || e.Outcome == OutcomeTransportFailure
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
