package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lorad/internal/catalog"
	"lorad/pkg/types"
)

type mockService struct {
	cards     []types.CardEntry
	models    []types.Model
	status    types.StatusResponse
	ready     bool
	rescan    types.RescanResponse
	rescanErr error
	suggest   []string
}

func (m *mockService) Cards() []types.CardEntry { return append([]types.CardEntry(nil), m.cards...) }

func (m *mockService) Card(key string) (types.CardEntry, error) {
	for _, c := range m.cards {
		if strings.EqualFold(c.Model.Name, key) {
			return c, nil
		}
	}
	return types.CardEntry{}, catalog.ErrCardNotFound(key)
}

func (m *mockService) ListModels() []types.Model { return append([]types.Model(nil), m.models...) }

func (m *mockService) Suggest(prefix string, limit int) ([]string, error) {
	if len(m.suggest) > limit {
		return m.suggest[:limit], nil
	}
	return m.suggest, nil
}

func (m *mockService) Rescan(ctx context.Context) (types.RescanResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.RescanResponse{}, err
	}
	return m.rescan, m.rescanErr
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func TestCardsHandler(t *testing.T) {
	svc := &mockService{cards: []types.CardEntry{
		{Model: types.Model{Name: "Wan Character"}, Variants: []types.Variant{{Label: "High"}, {Label: "Low"}}},
		{Model: types.Model{Name: "Loose Style"}},
	}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cards", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.CardsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Cards) != 2 || len(body.Cards[0].Variants) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCardByKey(t *testing.T) {
	svc := &mockService{cards: []types.CardEntry{{Model: types.Model{Name: "wan-character"}}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cards/wan-character", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestCardByKeyNotFound(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cards/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != http.StatusNotFound || !strings.Contains(body.Error, "missing") {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestModelsHandler(t *testing.T) {
	svc := &mockService{models: []types.Model{{FileName: "a.safetensors"}, {FileName: "b.safetensors"}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Models) != 2 {
		t.Fatalf("models len=%d", len(body.Models))
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{Models: 3, Cards: 2}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Models != 3 || body.Cards != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSuggestHandler(t *testing.T) {
	svc := &mockService{suggest: []string{"Wan Background", "Wan Character"}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?q=wan", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.SuggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Query != "wan" || len(body.Suggestions) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSuggestRequiresQuery(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSuggestRejectsBadLimit(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?q=wan&limit=zero", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSuggestLimitApplied(t *testing.T) {
	svc := &mockService{suggest: []string{"a", "b", "c"}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?q=x&limit=2", nil))
	var body types.SuggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Suggestions) != 2 {
		t.Fatalf("suggestions=%v", body.Suggestions)
	}
}

func TestRescanHandler(t *testing.T) {
	svc := &mockService{rescan: types.RescanResponse{Models: 5, Cards: 4}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rescan", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.RescanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Models != 5 || body.Cards != 4 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRescanErrorMaps500(t *testing.T) {
	svc := &mockService{rescanErr: errors.New("walk failed")}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rescan", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestRescanHTTPErrorMapping(t *testing.T) {
	svc := &mockService{rescanErr: mockHTTPError{msg: "busy", code: http.StatusTooManyRequests}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rescan", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyzNotReady(t *testing.T) {
	r := NewMux(&mockService{ready: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "scanning") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}
