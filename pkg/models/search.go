package models

import (
	"fmt"
	"time"
)

// Valores padrão de uma pesquisa.
const (
	DefaultPageNumber     = 1
	DefaultPageSize       = 10
	MaxPageSize           = 100
	DefaultSort           = "PERTINENCE"
	DefaultTypePagination = "ARTICLE"
)

// Critere é um termo procurado dentro de um campo.
type Critere struct {
	TypeRecherche TypeRecherche `json:"typeRecherche" validate:"required"`
	Valeur        string        `json:"valeur"`
	Operateur     Operateur     `json:"operateur" validate:"oneof=ET OU"`
}

// Champ agrupa critérios aplicados a um tipo de campo.
type Champ struct {
	TypeChamp TypeChamp `json:"typeChamp" validate:"required"`
	Criteres  []Critere `json:"criteres" validate:"min=1,dive"`
	Operateur Operateur `json:"operateur" validate:"oneof=ET OU"`
}

// DateRange é um intervalo de datas para facetas de data.
type DateRange struct {
	Start string `json:"start" validate:"required,isodate"`
	End   string `json:"end" validate:"required,isodate"`
}

// Filtre restringe o resultado por uma faceta. Apenas um dos campos de
// valor costuma ser usado, conforme a faceta.
type Filtre struct {
	Facette    Facette    `json:"facette" validate:"required"`
	Valeurs    []string   `json:"valeurs,omitempty"`
	Valeur     string     `json:"valeur,omitempty"`
	SingleDate string     `json:"singleDate,omitempty" validate:"omitempty,isodate"`
	Dates      *DateRange `json:"dates,omitempty"`
}

// Recherche é o bloco de pesquisa enviado na rota search.
type Recherche struct {
	Champs         []Champ   `json:"champs" validate:"min=1,dive"`
	Filtres        []Filtre  `json:"filtres" validate:"dive"`
	PageNumber     int       `json:"pageNumber" validate:"min=1"`
	PageSize       int       `json:"pageSize" validate:"min=1,max=100"`
	Operateur      Operateur `json:"operateur" validate:"oneof=ET OU"`
	Sort           string    `json:"sort"`
	TypePagination string    `json:"typePagination"`
}

// SearchRequest é o corpo da rota search.
type SearchRequest struct {
	Fond      Fond      `json:"fond" validate:"required"`
	Recherche Recherche `json:"recherche"`
}

func (SearchRequest) Route() string              { return "search" }
func (SearchRequest) ResponseKind() ResponseKind { return KindSearchResponse }

// validate confere se campos e facetas são aceitos pelo fundo.
func (s SearchRequest) validate() error {
	var champs map[TypeChamp]bool
	var facettes map[Facette]bool
	switch {
	case s.Fond.IsCode():
		champs, facettes = codeChamps, codeFacettes
	case s.Fond.IsLoda():
		champs, facettes = lodaChamps, lodaFacettes
	case s.Fond == FondJURI:
		champs, facettes = juriChamps, juriFacettes
	default:
		return nil
	}
	for _, c := range s.Recherche.Champs {
		if !champs[c.TypeChamp] {
			return fmt.Errorf("campo %s não é aceito no fundo %s", c.TypeChamp, s.Fond)
		}
	}
	for _, f := range s.Recherche.Filtres {
		if !facettes[f.Facette] {
			return fmt.Errorf("faceta %s não é aceita no fundo %s", f.Facette, s.Fond)
		}
	}
	return nil
}

// NewCritere cria um critério com operador ET.
func NewCritere(kind TypeRecherche, valeur string) Critere {
	if kind == "" {
		kind = RechercheExacte
	}
	return Critere{TypeRecherche: kind, Valeur: valeur, Operateur: OperateurET}
}

// NewChamp cria um campo com operador ET.
func NewChamp(kind TypeChamp, criteres ...Critere) Champ {
	return Champ{TypeChamp: kind, Criteres: criteres, Operateur: OperateurET}
}

// NewRecherche aplica os padrões de paginação, ordenação e operador.
func NewRecherche(champs []Champ, filtres ...Filtre) Recherche {
	if filtres == nil {
		filtres = []Filtre{}
	}
	return Recherche{
		Champs:         champs,
		Filtres:        filtres,
		PageNumber:     DefaultPageNumber,
		PageSize:       DefaultPageSize,
		Operateur:      OperateurET,
		Sort:           DefaultSort,
		TypePagination: DefaultTypePagination,
	}
}

// NomCodeFiltre filtra pelo nome oficial dos códigos. Siglas conhecidas
// (CCIV, CPEN...) são traduzidas.
func NomCodeFiltre(codes ...string) Filtre {
	valeurs := make([]string, 0, len(codes))
	for _, c := range codes {
		valeurs = append(valeurs, ResolveCodeName(c))
	}
	return Filtre{Facette: FacetteNomCode, Valeurs: valeurs}
}

// DateVersionFiltre fixa a data de vigência; data zero vira hoje.
func DateVersionFiltre(date time.Time) Filtre {
	if date.IsZero() {
		date = time.Now()
	}
	return Filtre{Facette: FacetteDateVersion, SingleDate: date.Format(DateLayout)}
}

// NatureFiltre filtra textos LODA pela natureza.
func NatureFiltre(natures ...Nature) Filtre {
	valeurs := make([]string, 0, len(natures))
	for _, n := range natures {
		valeurs = append(valeurs, string(n))
	}
	return Filtre{Facette: FacetteNature, Valeurs: valeurs}
}

// EtatFiltre filtra pelo estado jurídico do texto.
func EtatFiltre(etat string) Filtre {
	if etat == "" {
		etat = EtatVigueur
	}
	return Filtre{Facette: FacetteTextLegalStatus, Valeur: etat}
}

// JuridictionFiltre restringe a pesquisa JURI às jurisdições informadas.
func JuridictionFiltre(juridictions ...string) Filtre {
	return Filtre{Facette: FacetteJuridiction, Valeurs: juridictions}
}

// PublicationBulletinFiltre filtra decisões da Cour de cassation pela
// publicação no Bulletin. Valores aceitos: T e F.
func PublicationBulletinFiltre(valeurs ...string) Filtre {
	return Filtre{Facette: FacettePublicationBulletin, Valeurs: valeurs}
}
