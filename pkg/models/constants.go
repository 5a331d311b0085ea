package models

// Prefixos de identificadores Légifrance.
const (
	PrefixArticle     = "LEGIARTI"
	PrefixText        = "LEGITEXT"
	PrefixJorfText    = "JORFTEXT"
	PrefixJuriText    = "JURITEXT"
	PrefixSection     = "LEGISCTA"
	PrefixJorfArticle = "JORFARTI"
)

// DateLayout é o formato de data aceito pela API.
const DateLayout = "2006-01-02"

// ResponseKind é o modelo de resposta declarado por uma rota.
type ResponseKind string

const (
	KindNone                ResponseKind = ""
	KindSearchResponse      ResponseKind = "SearchResponseDTO"
	KindGetArticleResponse  ResponseKind = "GetArticleResponse"
	KindConsultTextResponse ResponseKind = "ConsultTextResponse"
	KindConsultJuriResponse ResponseKind = "ConsultJuriTextResponse"
)

// Fond é o fundo documental pesquisado.
type Fond string

const (
	FondJORF     Fond = "JORF"
	FondCNIL     Fond = "CNIL"
	FondCETAT    Fond = "CETAT"
	FondJURI     Fond = "JURI"
	FondJUFI     Fond = "JUFI"
	FondCONSTIT  Fond = "CONSTIT"
	FondKALI     Fond = "KALI"
	FondCodeDate Fond = "CODE_DATE"
	FondCodeEtat Fond = "CODE_ETAT"
	FondLodaDate Fond = "LODA_DATE"
	FondLodaEtat Fond = "LODA_ETAT"
	FondALL      Fond = "ALL"
	FondCIRC     Fond = "CIRC"
	FondACCO     Fond = "ACCO"
)

// IsCode informa se o fundo é de códigos.
func (f Fond) IsCode() bool { return f == FondCodeDate || f == FondCodeEtat }

// IsLoda informa se o fundo é de leis e decretos.
func (f Fond) IsLoda() bool { return f == FondLodaDate || f == FondLodaEtat }

// TypeChamp é o campo onde o critério é aplicado.
type TypeChamp string

const (
	ChampALL         TypeChamp = "ALL"
	ChampTitle       TypeChamp = "TITLE"
	ChampTable       TypeChamp = "TABLE"
	ChampNOR         TypeChamp = "NOR"
	ChampNum         TypeChamp = "NUM"
	ChampNumArticle  TypeChamp = "NUM_ARTICLE"
	ChampArticle     TypeChamp = "ARTICLE"
	ChampVisa        TypeChamp = "VISA"
	ChampNotice      TypeChamp = "NOTICE"
	ChampVisaNotice  TypeChamp = "VISA_NOTICE"
	ChampTravauxPrep TypeChamp = "TRAVAUX_PREP"
	ChampSignature   TypeChamp = "SIGNATURE"
	ChampNota        TypeChamp = "NOTA"
	ChampTexte       TypeChamp = "TEXTE"
	ChampECLI        TypeChamp = "ECLI"
	ChampNumAffaire  TypeChamp = "NUM_AFFAIRE"
	ChampAbstrats    TypeChamp = "ABSTRATS"
	ChampResumes     TypeChamp = "RESUMES"
)

// TypeRecherche é o modo de comparação de um critério.
type TypeRecherche string

const (
	RechercheExacte        TypeRecherche = "EXACTE"
	RechercheApproximative TypeRecherche = "APPROXIMATIVE"
	RechercheTousLesMots   TypeRecherche = "TOUS_LES_MOTS"
	RechercheUnDesMots     TypeRecherche = "UN_DES_MOTS"
	RechercheAucunMot      TypeRecherche = "AUCUN_MOT"
	RechercheExpression    TypeRecherche = "EXPRESSION"
	RechercheChampVide     TypeRecherche = "CHAMP_VIDE"
)

// Operateur combina critérios e campos.
type Operateur string

const (
	OperateurET Operateur = "ET"
	OperateurOU Operateur = "OU"
)

// Facette é o tipo de filtro.
type Facette string

const (
	FacetteNomCode            Facette = "NOM_CODE"
	FacetteDateSignature      Facette = "DATE_SIGNATURE"
	FacetteDateVersion        Facette = "DATE_VERSION"
	FacetteTextLegalStatus    Facette = "TEXT_LEGAL_STATUS"
	FacetteArticleLegalStatus Facette = "ARTICLE_LEGAL_STATUS"
	FacetteNature             Facette = "NATURE"
	FacetteNOR                Facette = "NOR"
	FacetteEtatTexte          Facette = "etatTexte"

	FacetteJuridiction         Facette = "JURIDICTION_JUDICIAIRE"
	FacettePublicationBulletin Facette = "CASSATION_TYPE_PUBLICATION_BULLETIN"
	FacetteFormation           Facette = "CASSATION_FORMATION"
	FacetteNatureDecision      Facette = "CASSATION_NATURE_DECISION"
	FacetteSiegeAppel          Facette = "APPEL_SIEGE_APPEL"
)

// Jurisdições aceitas pela faceta JURIDICTION_JUDICIAIRE.
const (
	JuridictionCassation    = "Cour de cassation"
	JuridictionAppel        = "Juridictions d'appel"
	JuridictionPremierDegre = "Juridictions du premier degré"
)

// Nature é a natureza de um texto LODA.
type Nature string

const (
	NatureLoi        Nature = "LOI"
	NatureOrdonnance Nature = "ORDONNANCE"
	NatureDecret     Nature = "DECRET"
	NatureArrete     Nature = "ARRETE"
)

// Estados jurídicos usados nos filtros e nos resultados.
const (
	EtatVigueur       = "VIGUEUR"
	EtatAbroge        = "ABROGE"
	EtatModifie       = "MODIFIE"
	EtatVigueurDiff   = "VIGUEUR_DIFF"
	EtatPerime        = "PERIME"
	EtatTransfere     = "TRANSFERE"
	EtatAnnule        = "ANNULE"
	EtatDisjoint      = "DISJOINT"
	EtatNonVigueur    = "NON_VIGUEUR"
	EtatAbrogeDiff    = "ABROGE_DIFF"
	EtatModifieMorted = "MODIFIE_MORT_NE"
)

// Campos aceitos por família de fundo.
var (
	codeChamps = map[TypeChamp]bool{
		ChampALL: true, ChampTitle: true, ChampTable: true, ChampNumArticle: true, ChampArticle: true,
	}
	lodaChamps = map[TypeChamp]bool{
		ChampALL: true, ChampTitle: true, ChampTable: true, ChampNOR: true, ChampNum: true,
		ChampNumArticle: true, ChampArticle: true, ChampVisa: true, ChampNotice: true,
		ChampVisaNotice: true, ChampTravauxPrep: true, ChampSignature: true, ChampNota: true,
	}
	codeFacettes = map[Facette]bool{
		FacetteNomCode: true, FacetteDateSignature: true, FacetteDateVersion: true, FacetteEtatTexte: true,
		FacetteTextLegalStatus: true, FacetteArticleLegalStatus: true,
	}
	lodaFacettes = map[Facette]bool{
		FacetteNature: true, FacetteNOR: true, FacetteDateVersion: true, FacetteDateSignature: true,
		FacetteTextLegalStatus: true, FacetteArticleLegalStatus: true,
	}
	juriChamps = map[TypeChamp]bool{
		ChampALL: true, ChampTitle: true, ChampAbstrats: true, ChampTexte: true, ChampResumes: true,
		ChampNumAffaire: true,
	}
	juriFacettes = map[Facette]bool{
		FacetteJuridiction: true, FacettePublicationBulletin: true, FacetteFormation: true,
		FacetteNatureDecision: true, FacetteSiegeAppel: true, FacetteDateSignature: true,
	}
)

// CodeNames associa as siglas usuais ao nome oficial do código, que é o
// valor esperado pelo filtro NOM_CODE.
var CodeNames = map[string]string{
	"CCIV":   "Code civil",
	"CPRCIV": "Code de procédure civile",
	"CCOM":   "Code de commerce",
	"CTRAV":  "Code du travail",
	"CPI":    "Code de la propriété intellectuelle",
	"CPEN":   "Code pénal",
	"CPP":    "Code de procédure pénale",
	"CASSUR": "Code des assurances",
	"CCONSO": "Code de la consommation",
	"CSI":    "Code de la sécurité intérieure",
	"CSP":    "Code de la santé publique",
	"CSS":    "Code de la sécurité sociale",
	"CESEDA": "Code de l'entrée et du séjour des étrangers et du droit d'asile",
	"CGCT":   "Code général des collectivités territoriales",
	"CPCE":   "Code des postes et des communications électroniques",
	"CENV":   "Code de l'environnement",
	"CJA":    "Code de justice administrative",
	"CASF":   "Code de l'action sociale et des familles",
	"CGI":    "Code général des impôts",
	"CMF":    "Code monétaire et financier",
	"CR":     "Code de la route",
	"CE":     "Code électoral",
	"CRPA":   "Code des relations entre le public et l'administration",
	"CCP":    "Code de la commande publique",
	"LPF":    "Livre des procédures fiscales",
}

// ResolveCodeName aceita uma sigla conhecida ou o nome completo.
func ResolveCodeName(name string) string {
	if full, ok := CodeNames[name]; ok {
		return full
	}
	return name
}
