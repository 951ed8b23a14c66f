package classify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"braincheck/internal/classify"
	"braincheck/internal/config"
	"braincheck/internal/imaging"
)

func newTestClient(endpoint string) *classify.Client {
	return classify.NewClient(&config.ClassifierConfig{
		Endpoint:  endpoint,
		Timeout:   "5s",
		InputSize: 2,
		Mean:      []float32{0, 0, 0},
		Scale:     []float32{1, 1, 1},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testTensor() *imaging.Tensor {
	return &imaging.Tensor{Size: 2, Data: make([]float32, 2*2*3)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   classify.Label
	}{
		{"first class wins", []float64{0.9, 0.05, 0.03, 0.02}, classify.MildDemented},
		{"last class wins", []float64{0.1, 0.1, 0.1, 0.7}, classify.VeryMildDemented},
		{"middle class wins", []float64{0.1, 0.2, 0.6, 0.1}, classify.NonDemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}

				var req struct {
					Instances [][][][]float32 `json:"instances"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if len(req.Instances) != 1 || len(req.Instances[0]) != 2 {
					t.Errorf("unexpected instance shape: %d batches", len(req.Instances))
				}

				json.NewEncoder(w).Encode(map[string][][]float64{
					"predictions": {tt.scores},
				})
			}))
			defer srv.Close()

			label, err := newTestClient(srv.URL).Classify(context.Background(), testTensor())
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if label != tt.want {
				t.Errorf("label = %s, want %s", label, tt.want)
			}
		})
	}
}

func TestClassifyEndpointFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model loading", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "not json")
			},
		},
		{
			name: "empty predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"predictions": []}`)
			},
		},
		{
			name: "score count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"predictions": [[0.5, 0.5]]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL).Classify(context.Background(), testTensor())
			if !errors.Is(err, classify.ErrUnavailable) {
				t.Errorf("err = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestClassifyUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newTestClient(srv.URL).Classify(context.Background(), testTensor())
	if !errors.Is(err, classify.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
