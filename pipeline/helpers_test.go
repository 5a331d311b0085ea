package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/models"
)

// fakePoster responde por rota e identificador e registra as chamadas
type fakePoster struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]string
	errs      map[string]error
	delay     func(id string) time.Duration
}

func newFakePoster() *fakePoster {
	return &fakePoster{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakePoster) Post(ctx context.Context, route string, body interface{}) (*client.Response, error) {
	id := requestID(body)

	if f.delay != nil {
		select {
		case <-time.After(f.delay(id)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, route+":"+id)
	f.mu.Unlock()

	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	if raw, ok := f.responses[route+":"+id]; ok {
		return &client.Response{StatusCode: 200, Body: []byte(raw), Outcome: client.OutcomeSuccess}, nil
	}
	out, _ := json.Marshal(map[string]string{"route": route, "id": id})
	return &client.Response{StatusCode: 200, Body: out, Outcome: client.OutcomeSuccess}, nil
}

func (f *fakePoster) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func requestID(body interface{}) string {
	switch r := body.(type) {
	case models.GetArticle:
		return r.ID
	case models.LegiPart:
		return r.TextID
	case models.ConsultJuri:
		return r.TextID
	case models.SearchRequest:
		return string(r.Fond)
	}
	return ""
}

func decodeJSON(raw string) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		panic(err)
	}
	return m
}

const searchResponse = `{
  "totalResultNumber": 2,
  "results": [
    {
      "titles": [{"id": "LEGITEXT000006070721", "cid": "LEGITEXT000006070721", "title": "Code civil"}],
      "sections": [
        {
          "id": "LEGISCTA000006089696",
          "title": "Titre préliminaire",
          "extracts": [
            {"id": "LEGIARTI000006419280", "num": "1", "legalStatus": "VIGUEUR", "dateVersion": "2026-01-01", "title": "Article 1", "values": ["Les lois..."]},
            {"id": "LEGIARTI000006419281", "num": "2", "legalStatus": "ABROGE", "title": "Article 2"}
          ],
          "sections": [
            {"id": "LEGISCTA000006089697", "title": "Sous-section", "extracts": [{"id": "LEGIARTI000006419282", "num": "3", "legalStatus": "VIGUEUR"}]}
          ]
        }
      ]
    },
    {
      "titles": [{"id": "JORFTEXT000000000001", "title": "Loi"}],
      "sections": "not-a-list"
    },
    "ignored"
  ]
}`
