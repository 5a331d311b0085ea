package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/raywall/legifrance-toolkit/tools/emulator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper para executar request através do roteador (necessário para mux.Vars funcionar)
func executeRequest(handler http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/users/{id}", handler).Methods(method)
	router.HandleFunc("/users", handler).Methods(method)
	router.HandleFunc("/consult/getArticle", handler).Methods(method)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestNewHandler_StaticResponse(t *testing.T) {
	route := RouteConfig{
		Path:     "/users",
		Method:   "GET",
		Response: &types.Response{Status: 200, Body: map[string]string{"msg": "static"}},
	}

	rr := executeRequest(NewHandler(route), "GET", "/users", "")

	assert.Equal(t, 200, rr.Code)
	assert.Equal(t, "{\"msg\":\"static\"}\n", rr.Body.String()) // json.Encoder adiciona newline
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestNewHandler_Dynamic_PathParams(t *testing.T) {
	route := RouteConfig{
		Path:   "/users/{id}",
		Method: "GET",
		Data: []interface{}{
			map[string]interface{}{"id": float64(1), "name": "Alice"},
			map[string]interface{}{"id": float64(2), "name": "Bob"},
		},
		PathParams:        []types.ParamMapping{{Name: "id", MapsTo: "id"}},
		ResponseOnNoMatch: &types.Response{Status: 404, Body: "not found"},
	}
	handler := NewHandler(route)

	t.Run("Match Found (Alice)", func(t *testing.T) {
		rr := executeRequest(handler, "GET", "/users/1", "")
		require.Equal(t, 200, rr.Code)
		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, "Alice", res["name"])
	})

	t.Run("No Match", func(t *testing.T) {
		rr := executeRequest(handler, "GET", "/users/999", "")
		assert.Equal(t, 404, rr.Code)
	})
}

func TestNewHandler_Dynamic_QueryParams(t *testing.T) {
	route := RouteConfig{
		Path:   "/users",
		Method: "GET",
		Data: []interface{}{
			map[string]interface{}{"type": "admin", "name": "Alice"},
			map[string]interface{}{"type": "user", "name": "Bob"},
			map[string]interface{}{"type": "user", "name": "Carol"},
		},
		QueryParams: []types.ParamMapping{{Name: "role", MapsTo: "type"}},
	}

	rr := executeRequest(NewHandler(route), "GET", "/users?role=user", "")

	require.Equal(t, 200, rr.Code)
	var res []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Len(t, res, 2, "mais de um match devolve lista")
}

func TestNewHandler_Dynamic_BodyParams(t *testing.T) {
	route := RouteConfig{
		Path:   "/consult/getArticle",
		Method: "POST",
		Data: []interface{}{
			map[string]interface{}{"article": map[string]interface{}{"id": "LEGIARTI000006419280", "num": "1"}},
			map[string]interface{}{"article": map[string]interface{}{"id": "LEGIARTI000006419281", "num": "2"}},
		},
		BodyParams: []types.ParamMapping{{Name: "id", MapsTo: "article.id"}},
	}
	handler := NewHandler(route)

	t.Run("Match pelo corpo", func(t *testing.T) {
		rr := executeRequest(handler, "POST", "/consult/getArticle", `{"id": "LEGIARTI000006419281"}`)
		require.Equal(t, 200, rr.Code)
		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, "2", res["article"].(map[string]interface{})["num"])
	})

	t.Run("Corpo inválido", func(t *testing.T) {
		rr := executeRequest(handler, "POST", "/consult/getArticle", `{`)
		assert.Equal(t, 400, rr.Code)
	})
}

func TestValuesMatch(t *testing.T) {
	assert.True(t, valuesMatch("LEGIARTI000006419280", "LEGIARTI000006419280"))
	assert.True(t, valuesMatch(float64(7), "7"))
	assert.False(t, valuesMatch(float64(7), "sete"))
	assert.True(t, valuesMatch(true, "TRUE"))
	assert.False(t, valuesMatch(map[string]interface{}{}, "x"))
}
