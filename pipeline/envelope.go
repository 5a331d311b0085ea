package pipeline

// Envelope é o valor que circula entre as etapas: um payload e o estágio
// que descreve o formato dele. Com Stage igual a StageError o payload é
// um *Failure e nenhuma etapa o transforma.
type Envelope struct {
	Payload any   `json:"payload"`
	Stage   Stage `json:"stage"`
}

// NewEnvelope cria um envelope.
func NewEnvelope(stage Stage, payload any) Envelope {
	return Envelope{Payload: payload, Stage: stage}
}

// IsError informa se o envelope carrega uma falha.
func (e Envelope) IsError() bool { return e.Stage == StageError }

// Err devolve a falha carregada, ou nil.
func (e Envelope) Err() error {
	if e.Stage != StageError {
		return nil
	}
	if f, ok := e.Payload.(*Failure); ok {
		return f
	}
	return &Failure{Kind: KindInternal}
}

// NewError envolve err num envelope de erro.
func NewError(step string, index int, err error) Envelope {
	return Envelope{Stage: StageError, Payload: newFailure(step, index, err)}
}
