package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request é o descritor de uma chamada à API: a rota relativa e o modelo
// de resposta que ela declara. O corpo JSON é o próprio valor.
type Request interface {
	Route() string
	ResponseKind() ResponseKind
}

// ErrInvalidRequest é a causa comum das falhas de Validate.
var ErrInvalidRequest = errors.New("requisição inválida")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cid", func(fl validator.FieldLevel) bool { return IsCID(fl.Field().String()) })
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool { return IsDate(fl.Field().String()) })
	return v
}

// Validate aplica as regras de tag e, quando o tipo sabe se validar, as
// regras semânticas dele.
func Validate(req Request) error {
	if req == nil {
		return fmt.Errorf("%w: descritor nulo", ErrInvalidRequest)
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s (%s)", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, req.Route(), strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if sv, ok := req.(interface{ validate() error }); ok {
		if err := sv.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRequest, req.Route(), err)
		}
	}
	return nil
}
