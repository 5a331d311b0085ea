// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/raywall/legifrance-toolkit/pkg/auth"
	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/models"
)

// Classificação estável das falhas, usada em logs, métricas e no JSON.
const (
	KindAuthentication    = "authentication_error"
	KindAPI               = "api_error"
	KindInvalidArgument   = "invalid_argument"
	KindStageMismatch     = "stage_mismatch"
	KindNoIdentifierFound = "no_identifier_found"
	KindMalformedResponse = "malformed_response"
	KindInternal          = "internal"
)

// StageMismatchError é retornado quando uma etapa recebe um envelope com
// estágio que ela não aceita.
type StageMismatchError struct {
	Step     string
	Got      Stage
	Expected []Stage
}

func (e *StageMismatchError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		expected[i] = string(s)
	}
	return fmt.Sprintf("pipeline: etapa '%s' recebeu estágio '%s', esperado %s", e.Step, e.Got, strings.Join(expected, "|"))
}

// NoIdentifierFoundError indica que nenhum registro extraído tinha um
// identificador com o prefixo procurado.
type NoIdentifierFoundError struct {
	Prefix string
}

func (e *NoIdentifierFoundError) Error() string {
	return fmt.Sprintf("pipeline: nenhum identificador com prefixo %s encontrado", e.Prefix)
}

// StructureError indica uma resposta de busca fora do formato esperado.
type StructureError struct {
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("pipeline: resposta malformada em '%s': %s", e.Path, e.Reason)
}

// Failure é o payload de um envelope de erro: a etapa que falhou, a
// posição dela no pipeline e a causa.
type Failure struct {
	Step  string
	Index int
	Kind  string
	Err   error
}

func newFailure(step string, index int, err error) *Failure {
	return &Failure{Step: step, Index: index, Kind: classify(err), Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("pipeline: etapa '%s' falhou (%s)", f.Step, f.Kind)
	}
	if f.Step == "" {
		return f.Err.Error()
	}
	return fmt.Sprintf("etapa '%s': %v", f.Step, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// MarshalJSON descreve a falha de forma estruturada. Erros da API levam
// status e corpo.
func (f *Failure) MarshalJSON() ([]byte, error) {
	out := struct {
		Step       string `json:"step,omitempty"`
		Index      int    `json:"index"`
		Kind       string `json:"kind"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode,omitempty"`
		Body       string `json:"body,omitempty"`
		Attempts   int    `json:"attempts,omitempty"`
	}{Step: f.Step, Index: f.Index, Kind: f.Kind}

	if f.Err != nil {
		out.Message = f.Err.Error()
	}
	var apiErr *client.APIError
	if errors.As(f.Err, &apiErr) {
		out.StatusCode = apiErr.StatusCode
		out.Body = apiErr.Body
	}
	var authErr *auth.AuthenticationError
	if errors.As(f.Err, &authErr) {
		out.Attempts = authErr.Attempts
	}
	return json.Marshal(out)
}

func classify(err error) string {
	var (
		authErr   *auth.AuthenticationError
		apiErr    *client.APIError
		mismatch  *StageMismatchError
		noID      *NoIdentifierFoundError
		structErr *StructureError
	)
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &authErr):
		return KindAuthentication
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.Is(err, client.ErrInvalidArgument), errors.Is(err, models.ErrInvalidRequest):
		return KindInvalidArgument
	case errors.As(err, &mismatch):
		return KindStageMismatch
	case errors.As(err, &noID):
		return KindNoIdentifierFound
	case errors.As(err, &structErr):
		return KindMalformedResponse
	}
	return KindInternal
}
