package pipeline

import (
	"context"
	"fmt"
)

// RecordKind indica de que parte do resultado o registro veio.
type RecordKind string

const (
	RecordTitle   RecordKind = "title"
	RecordSection RecordKind = "section"
	RecordExtract RecordKind = "extract"
)

// ExtractedRecord é uma entrada da lista achatada de um resultado de
// busca. Apenas os campos do tipo de registro são preenchidos.
type ExtractedRecord struct {
	Kind        RecordKind `json:"kind"`
	TitleID     string     `json:"titleId,omitempty"`
	TitleCid    string     `json:"titleCid,omitempty"`
	SectionID   string     `json:"sectionId,omitempty"`
	ExtractID   string     `json:"extractId,omitempty"`
	Title       string     `json:"title"`
	Num         string     `json:"num,omitempty"`
	LegalStatus string     `json:"legalStatus,omitempty"`
	DateVersion string     `json:"dateVersion,omitempty"`
	Values      []string   `json:"values,omitempty"`
}

// Map expõe o registro para avaliação de expressões.
func (r ExtractedRecord) Map() map[string]interface{} {
	values := make([]interface{}, len(r.Values))
	for i, v := range r.Values {
		values[i] = v
	}
	return map[string]interface{}{
		"kind":        string(r.Kind),
		"titleId":     r.TitleID,
		"titleCid":    r.TitleCid,
		"sectionId":   r.SectionID,
		"extractId":   r.ExtractID,
		"title":       r.Title,
		"num":         r.Num,
		"legalStatus": r.LegalStatus,
		"dateVersion": r.DateVersion,
		"values":      values,
	}
}

// ExtractSearchResult achata a resposta de busca (SearchResponseDTO) numa
// lista de registros de título, seção e trecho.
type ExtractSearchResult struct{}

// NewExtractSearchResult cria a etapa.
func NewExtractSearchResult() ExtractSearchResult { return ExtractSearchResult{} }

func (ExtractSearchResult) Name() string { return "extract_search_result" }

func (s ExtractSearchResult) Process(_ context.Context, in Envelope) (Envelope, error) {
	if err := expectStage(s.Name(), in.Stage, StageSearchResult); err != nil {
		return Envelope{}, err
	}
	records, err := ExtractRecords(in.Payload)
	if err != nil {
		return Envelope{}, err
	}
	return NewEnvelope(StageExtracted, records), nil
}

// ExtractRecords percorre results[].titles, results[].sections (com
// seções aninhadas) e os extracts de cada nível. Chaves ausentes e
// elementos que não são objetos são ignorados.
func ExtractRecords(payload any) ([]ExtractedRecord, error) {
	body, ok := payload.(map[string]interface{})
	if !ok {
		return nil, &StructureError{Path: "$", Reason: fmt.Sprintf("esperado objeto, recebido %T", payload)}
	}
	raw, ok := body["results"]
	if !ok {
		return nil, &StructureError{Path: "results", Reason: "chave ausente"}
	}
	results, ok := raw.([]interface{})
	if !ok {
		return nil, &StructureError{Path: "results", Reason: fmt.Sprintf("esperado lista, recebido %T", raw)}
	}

	records := make([]ExtractedRecord, 0, len(results))
	for _, r := range results {
		result, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		for _, t := range objects(result["titles"]) {
			records = append(records, ExtractedRecord{
				Kind:     RecordTitle,
				TitleID:  str(t["id"]),
				TitleCid: str(t["cid"]),
				Title:    str(t["title"]),
			})
		}
		records = appendSections(records, result["sections"])
		records = appendExtracts(records, result["extracts"])
	}
	return records, nil
}

func appendSections(records []ExtractedRecord, raw interface{}) []ExtractedRecord {
	for _, s := range objects(raw) {
		records = append(records, ExtractedRecord{
			Kind:      RecordSection,
			SectionID: str(s["id"]),
			Title:     str(s["title"]),
		})
		records = appendExtracts(records, s["extracts"])
		records = appendSections(records, s["sections"])
	}
	return records
}

func appendExtracts(records []ExtractedRecord, raw interface{}) []ExtractedRecord {
	for _, e := range objects(raw) {
		records = append(records, ExtractedRecord{
			Kind:        RecordExtract,
			ExtractID:   str(e["id"]),
			Num:         str(e["num"]),
			LegalStatus: str(e["legalStatus"]),
			DateVersion: str(e["dateVersion"]),
			Title:       str(e["title"]),
			Values:      strs(e["values"]),
		})
	}
	return records
}

func objects(raw interface{}) []map[string]interface{} {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func str(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprint(x)
	}
}

func strs(v interface{}) []string {
	switch x := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := str(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	}
	return nil
}
