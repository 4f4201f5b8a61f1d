package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClarifai(url string) *ClarifaiService {
	return &ClarifaiService{
		apiKey:  "test-key",
		baseURL: url,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClarifaiClassifyImage_ParsesConceptsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Key test-key" {
			t.Errorf("expected Key auth header, got %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		raw, _ := json.Marshal(body)
		if !strings.Contains(string(raw), `"base64":"aW1n"`) {
			t.Errorf("expected base64 image payload, got %s", raw)
		}
		w.Write([]byte(`{"outputs":[{"data":{"concepts":[{"name":"pizza","value":0.98},{"name":"food","value":0.95}]}}]}`))
	}))
	defer srv.Close()

	concepts, err := newTestClarifai(srv.URL).ClassifyImage(context.Background(), "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(concepts))
	}
	if concepts[0].Name != "pizza" || concepts[0].Confidence != 0.98 {
		t.Fatalf("unexpected first concept: %+v", concepts[0])
	}
	if concepts[1].Name != "food" {
		t.Fatalf("service order not preserved: %+v", concepts)
	}
}

func TestClarifaiClassifyImage_ErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":{"description":"invalid api key"}}`))
	}))
	defer srv.Close()

	_, err := newTestClarifai(srv.URL).ClassifyImage(context.Background(), "aW1n")
	var svcErr *ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", svcErr.StatusCode)
	}
	if !strings.Contains(svcErr.Body, "invalid api key") {
		t.Fatalf("expected response body in error, got %q", svcErr.Body)
	}
}

func TestClarifaiClassifyImage_MalformedBodyIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestClarifai(srv.URL).ClassifyImage(context.Background(), "aW1n")
	var svcErr *ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError for malformed body, got %v", err)
	}
}
