package auth

import (
	"errors"
	"fmt"
)

// ErrClosed é retornado quando o Manager já foi encerrado.
var ErrClosed = errors.New("auth: manager encerrado")

// AuthenticationError indica que todas as tentativas de obter um token
// falharam. Err é a causa da última tentativa.
type AuthenticationError struct {
	Attempts int
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("auth: falha ao obter token após %d tentativa(s): %v", e.Attempts, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
