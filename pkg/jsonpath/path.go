// Package jsonpath navega em documentos JSON já decodificados
// (map[string]interface{} e []interface{}) com caminhos no formato
// "a.b[0].c".
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// segment é uma parte do caminho: um campo ou um índice.
type segment struct {
	field   string
	index   int
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return fmt.Sprintf("[%d]", s.index)
	}
	return s.field
}

// Get resolve path sobre v. Caminho vazio devolve v.
//
// Exemplos:
//   - "article.id"         -> campo aninhado
//   - "results[0].titles"  -> campo de um elemento
//   - "[1]"                -> elemento da raiz, quando ela é um array
func Get(v interface{}, path string) (interface{}, error) {
	segments, err := parse(path)
	if err != nil {
		return nil, err
	}

	current := v
	for i, seg := range segments {
		if seg.isIndex {
			arr, ok := current.([]interface{})
			if !ok {
				return nil, fmt.Errorf("esperado array em '%s', encontrado %T", join(segments[:i]), current)
			}
			if seg.index < 0 || seg.index >= len(arr) {
				return nil, fmt.Errorf("índice %d fora do intervalo em '%s' (tamanho %d)", seg.index, join(segments[:i]), len(arr))
			}
			current = arr[seg.index]
			continue
		}

		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("esperado objeto em '%s', encontrado %T", join(segments[:i]), current)
		}
		value, exists := m[seg.field]
		if !exists {
			return nil, fmt.Errorf("campo '%s' não encontrado em '%s'", seg.field, join(segments[:i+1]))
		}
		current = value
	}
	return current, nil
}

// Lookup é Get sem o detalhe do erro.
func Lookup(v interface{}, path string) (interface{}, bool) {
	value, err := Get(v, path)
	return value, err == nil
}

// String resolve o caminho e converte escalares para texto. null é erro.
func String(v interface{}, path string) (string, error) {
	value, err := Get(v, path)
	if err != nil {
		return "", err
	}
	switch s := value.(type) {
	case string:
		return s, nil
	case nil:
		return "", fmt.Errorf("valor nulo em '%s'", path)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case map[string]interface{}, []interface{}:
		return "", fmt.Errorf("valor em '%s' não é escalar: %T", path, value)
	default:
		return fmt.Sprint(s), nil
	}
}

func parse(path string) ([]segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	var segments []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("caminho inválido '%s': segmento vazio", path)
		}
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open == -1 {
				segments = append(segments, segment{field: part})
				break
			}
			if open > 0 {
				segments = append(segments, segment{field: part[:open]})
			}
			end := strings.IndexByte(part[open:], ']')
			if end == -1 {
				return nil, fmt.Errorf("caminho inválido '%s': colchete não fechado", path)
			}
			idx, err := strconv.Atoi(part[open+1 : open+end])
			if err != nil {
				return nil, fmt.Errorf("caminho inválido '%s': índice '%s'", path, part[open+1:open+end])
			}
			segments = append(segments, segment{index: idx, isIndex: true})
			part = part[open+end+1:]
		}
	}
	return segments, nil
}

func join(segments []segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 && !seg.isIndex {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}
