package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"DormBack/internal/domain/models"
	"DormBack/internal/keysource"
	"DormBack/internal/signer"
	"DormBack/internal/synthetic"
	"DormBack/internal/usecase"
	"DormBack/pkg/cache"
	"DormBack/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeQueue struct {
	mu       sync.Mutex
	messages []interface{}
}

func (q *fakeQueue) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, payload)
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordSeriesGenerated(string, int64) {}
func (noopMetrics) RecordPointsRouted(string, int)      {}
func (noopMetrics) RecordError(string)                  {}
func (noopMetrics) RecordCheck(string, string)          {}
func (noopMetrics) RecordLatency(string, float64)       {}

func newTestHandler(t *testing.T) (*FixturesEchoHandler, *fakeQueue, *echo.Echo) {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	fixtures := usecase.NewFixtureService(synthetic.NewGenerator(), nil, noopMetrics{}, log, 0)
	harness := usecase.NewHarnessRunner(signer.NewMock(), keysource.NewEphemeral(), noopMetrics{}, log, "mock")
	runs := usecase.NewRunStore(mem)
	q := &fakeQueue{}
	stream := NewStreamEchoHandler(log, fixtures, 0)

	h := NewFixturesEchoHandler(log, fixtures, harness, runs, q, nil, stream, "none")
	e := echo.New()
	h.RegisterRoutes(e)
	return h, q, e
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *apiEnvelope {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	env := &apiEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), env); err != nil {
		t.Fatalf("bad response body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestSeriesEndpoint(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/api/series?seed=42&length=3&start=2023-01-01", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, body = %s", env.Status, env.Data)
	}

	var s models.MarketSeries
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("unmarshal series: %v", err)
	}
	if s.Seed != 42 || len(s.Points) != 3 {
		t.Fatalf("unexpected series: seed=%d points=%d", s.Seed, len(s.Points))
	}
	if got := s.Points[0].Date.Format("2006-01-02"); got != "2023-01-01" {
		t.Fatalf("first date = %s", got)
	}

	// Same parameters, same payload.
	again := doRequest(t, e, http.MethodGet, "/api/series?seed=42&length=3&start=2023-01-01", "")
	if string(env.Data) != string(again.Data) {
		t.Fatal("identical requests returned different payloads")
	}
}

func TestSeriesEndpointDefaults(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/api/series?length=2", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	var s models.MarketSeries
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("unmarshal series: %v", err)
	}
	if s.Seed != 42 {
		t.Fatalf("default seed = %d, want 42", s.Seed)
	}
}

func TestSeriesEndpointSeedZeroIsNotDefaulted(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/api/series?seed=0&length=2", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	var s models.MarketSeries
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("unmarshal series: %v", err)
	}
	if s.Seed != 0 {
		t.Fatalf("seed = %d, want 0", s.Seed)
	}
}

func TestSeriesEndpointRejectsBadParams(t *testing.T) {
	_, _, e := newTestHandler(t)

	for _, target := range []string{
		"/api/series?seed=-1",
		"/api/series?length=0",
		"/api/series?length=-3",
		"/api/series?start=01-01-2023",
	} {
		env := doRequest(t, e, http.MethodGet, target, "")
		if env.Status != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, env.Status)
		}
	}
}

func TestChecksEndpoint(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/api/checks", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	var report models.HarnessReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if !report.Passed() || len(report.Checks) != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestCreateAndGetRun(t *testing.T) {
	_, q, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodPost, "/api/runs", `{"seed":7,"length":10,"start":"2023-06-01"}`)
	if env.Status != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", env.Status, env.Data)
	}
	var run models.FixtureRun
	if err := json.Unmarshal(env.Data, &run); err != nil {
		t.Fatalf("unmarshal run: %v", err)
	}
	if run.ID == "" || run.State != models.RunQueued || run.Seed != 7 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if len(q.messages) != 1 {
		t.Fatalf("queued %d messages, want 1", len(q.messages))
	}

	env = doRequest(t, e, http.MethodGet, "/api/runs/"+run.ID, "")
	if env.Status != http.StatusOK {
		t.Fatalf("get run status = %d", env.Status)
	}
}

func TestGetRunNotFound(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/api/runs/nope", "")
	if env.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", env.Status)
	}
}

func TestHealthz(t *testing.T) {
	_, _, e := newTestHandler(t)

	env := doRequest(t, e, http.MethodGet, "/healthz", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
}
