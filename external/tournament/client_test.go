package tournament

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aegisleagues/league-data/internal/usecase"
)

func TestClient_CreateTournamentID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tournaments" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-token") != "secret" {
			t.Errorf("missing api token header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["name"] != "s2022ail" {
			t.Errorf("unexpected tournament name: %s", body["name"])
		}
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"tournamentId": 9015}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "secret"})

	id, err := client.CreateTournamentID(t.Context(), "s2022ail")
	if err != nil {
		t.Fatalf("create tournament id: %v", err)
	}
	if id != 9015 {
		t.Fatalf("unexpected tournament id: %d", id)
	}
}

func TestClient_GenerateCodesSurfacesRetries(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Path != "/tournaments/9015/codes" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["count"] != float64(10) {
			t.Errorf("unexpected count: %v", body["count"])
		}
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"codes": ["c1","c2","c3","c4","c5","c6","c7","c8","c9","c10"]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})
	client.backoffUnit = time.Millisecond

	batch, err := client.GenerateCodes(t.Context(), usecase.CodeRequest{
		Week:         "W1",
		TournamentID: 9015,
		ShortName:    "s2021agl",
		Count:        10,
	})
	if err != nil {
		t.Fatalf("generate codes: %v", err)
	}
	if len(batch.Codes) != 10 {
		t.Fatalf("unexpected code count: %d", len(batch.Codes))
	}
	if batch.TimesRetried != 2 {
		t.Fatalf("expected 2 retries surfaced, got %d", batch.TimesRetried)
	}
}

func TestClient_GenerateCodesRejectsBadTournamentID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0"})
	if _, err := client.GenerateCodes(t.Context(), usecase.CodeRequest{TournamentID: 0}); err == nil {
		t.Fatalf("expected error for missing tournament id")
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})

	_, err := client.GenerateCodes(t.Context(), usecase.CodeRequest{Week: "W1", TournamentID: 1, ShortName: "x"})
	if err == nil {
		t.Fatalf("expected error for forbidden status")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", hits.Load())
	}
}
