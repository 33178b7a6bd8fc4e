package routing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swiftride/swiftride-api/internal/pkg/routing"
)

func TestMatrix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/matrix/driving-car" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "test_api_key" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		var body struct {
			Locations [][]float64 `json:"locations"`
			Metrics   []string    `json:"metrics"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Locations) != 2 {
			t.Errorf("expected 2 locations, got %d", len(body.Locations))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"distances": [][]float64{{0, 12400}, {12400, 0}},
			"durations": [][]float64{{0, 1080}, {1080, 0}},
		})
	}))
	defer srv.Close()

	client := routing.NewClient(routing.Config{
		APIKey:  "test_api_key",
		BaseURL: srv.URL,
	})

	m, err := client.Matrix(context.Background(), [2]float64{77.5946, 12.9716}, [2]float64{77.7500, 13.0000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DistanceMeters != 12400 {
		t.Fatalf("expected distance 12400, got %f", m.DistanceMeters)
	}
	if m.DurationSeconds != 1080 {
		t.Fatalf("expected duration 1080, got %f", m.DurationSeconds)
	}
}

func TestMatrixNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	client := routing.NewClient(routing.Config{
		APIKey:  "test_api_key",
		BaseURL: srv.URL,
	})

	if _, err := client.Matrix(context.Background(), [2]float64{0, 0}, [2]float64{1, 1}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestMatrixRejectsEmptyAPIKey(t *testing.T) {
	client := routing.NewClient(routing.Config{})

	if _, err := client.Matrix(context.Background(), [2]float64{0, 0}, [2]float64{1, 1}); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestMatrixRejectsTruncatedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"distances":[[0]],"durations":[[0]]}`))
	}))
	defer srv.Close()

	client := routing.NewClient(routing.Config{
		APIKey:  "test_api_key",
		BaseURL: srv.URL,
	})

	if _, err := client.Matrix(context.Background(), [2]float64{0, 0}, [2]float64{1, 1}); err == nil {
		t.Fatal("expected error for missing matrix cells")
	}
}
