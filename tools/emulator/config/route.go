package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raywall/legifrance-toolkit/pkg/jsonpath"
	"github.com/raywall/legifrance-toolkit/tools/emulator/types"
	"github.com/rs/zerolog/log"
)

// RouteConfig para cada rota
type RouteConfig struct {
	Path              string               `json:"path"`
	Method            string               `json:"method"`
	Response          *types.Response      `json:"response,omitempty"` // Para respostas estáticas
	Data              []interface{}        `json:"data,omitempty"`     // Para dados dinâmicos
	QueryParams       []types.ParamMapping `json:"query_params,omitempty"`
	PathParams        []types.ParamMapping `json:"path_params,omitempty"`
	BodyParams        []types.ParamMapping `json:"body_params,omitempty"`
	ResponseOnMatch   *types.Response      `json:"response_on_match,omitempty"`
	ResponseOnNoMatch *types.Response      `json:"response_on_no_match,omitempty"`
}

func (r RouteConfig) static() bool {
	return r.Response != nil && len(r.Data) == 0 && len(r.QueryParams) == 0 && len(r.PathParams) == 0 && len(r.BodyParams) == 0
}

// NewHandler monta o handler da rota: resposta estática ou busca nos dados
// pelos parâmetros de path, query e corpo JSON.
func NewHandler(route RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.static() {
			SendResponse(w, route.Response.Status, route.Response.Body)
			return
		}

		params := make(map[string]string)

		vars := mux.Vars(r)
		for _, p := range route.PathParams {
			if value, ok := vars[p.Name]; ok {
				params[p.MapsTo] = value
			}
		}

		query := r.URL.Query()
		for _, p := range route.QueryParams {
			if value := query.Get(p.Name); value != "" {
				params[p.MapsTo] = value
			}
		}

		if len(route.BodyParams) > 0 {
			body, err := readBody(r)
			if err != nil {
				SendResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			for _, p := range route.BodyParams {
				if value, ok := jsonpath.Lookup(body, p.Name); ok {
					params[p.MapsTo] = fmt.Sprint(value)
				}
			}
		}

		var matches []interface{}
		for _, item := range route.Data {
			match := true
			for field, value := range params {
				itemValue, exists := jsonpath.Lookup(item, field)
				if !exists || !valuesMatch(itemValue, value) {
					match = false
					break
				}
			}
			if match {
				matches = append(matches, item)
			}
		}

		if len(matches) == 0 {
			resp := route.ResponseOnNoMatch
			if resp == nil {
				resp = &types.Response{Status: 404, Body: map[string]string{"error": "Not found"}}
			}
			SendResponse(w, resp.Status, resp.Body)
			return
		}

		resp := route.ResponseOnMatch
		if resp == nil {
			resp = &types.Response{Status: 200}
		}

		var body interface{}
		if len(matches) == 1 {
			body = matches[0]
		} else {
			body = matches
		}

		SendResponse(w, resp.Status, body)
	}
}

// SendResponse escreve body como JSON.
func SendResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("erro ao serializar resposta")
		}
	}
}

func readBody(r *http.Request) (interface{}, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler corpo: %w", err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}
	var body interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("corpo não é JSON: %w", err)
	}
	return body, nil
}

func valuesMatch(a interface{}, b string) bool {
	switch v := a.(type) {
	case string:
		return v == b
	case float64:
		f, err := strconv.ParseFloat(b, 64)
		return err == nil && v == f
	case int:
		i, err := strconv.Atoi(b)
		return err == nil && v == i
	case bool:
		return strings.ToLower(b) == fmt.Sprintf("%v", v)
	default:
		return false
	}
}
