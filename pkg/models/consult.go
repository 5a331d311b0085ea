package models

import (
	"fmt"
	"time"
)

// GetArticle consulta um artigo pelo identificador LEGIARTI.
type GetArticle struct {
	ID string `json:"id" validate:"required"`
}

func (GetArticle) Route() string              { return "consult/getArticle" }
func (GetArticle) ResponseKind() ResponseKind { return KindGetArticleResponse }

// LegiPart consulta um texto LEGI (código ou lei) numa data de vigência.
type LegiPart struct {
	TextID         string `json:"textId" validate:"required"`
	Date           string `json:"date" validate:"required,isodate"`
	SearchedString string `json:"searchedString,omitempty"`
}

func (LegiPart) Route() string              { return "consult/legiPart" }
func (LegiPart) ResponseKind() ResponseKind { return KindConsultTextResponse }

// NewLegiPart monta a consulta com a data informada. Data zero vira
// time.Now(); quem tem relógio próprio (search.WithClock) resolve a data
// antes de chamar.
func NewLegiPart(textID string, date time.Time) LegiPart {
	if date.IsZero() {
		date = time.Now()
	}
	return LegiPart{TextID: textID, Date: date.Format(DateLayout)}
}

// Jorf consulta um texto publicado no Journal officiel.
type Jorf struct {
	TextCid        string `json:"textCid" validate:"required"`
	SearchedString string `json:"searchedString,omitempty"`
}

func (Jorf) Route() string              { return "consult/jorf" }
func (Jorf) ResponseKind() ResponseKind { return KindConsultTextResponse }

// GetSectionByCid consulta uma seção pelo CID. A rota não declara modelo
// de resposta.
type GetSectionByCid struct {
	Cid string `json:"cid" validate:"required,cid"`
}

func (GetSectionByCid) Route() string              { return "consult/getSectionByCid" }
func (GetSectionByCid) ResponseKind() ResponseKind { return KindNone }

// ConsultJuri consulta uma decisão de jurisprudência judicial pelo
// identificador JURITEXT.
type ConsultJuri struct {
	TextID         string `json:"textId" validate:"required"`
	SearchedString string `json:"searchedString,omitempty"`
}

func (ConsultJuri) Route() string              { return "consult/juri" }
func (ConsultJuri) ResponseKind() ResponseKind { return KindConsultJuriResponse }

func (c ConsultJuri) validate() error {
	if !HasPrefix(c.TextID, PrefixJuriText) {
		return fmt.Errorf("textId %q não é uma decisão %s", c.TextID, PrefixJuriText)
	}
	return nil
}
