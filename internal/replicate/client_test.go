package replicate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *HTTPClient {
	return &HTTPClient{
		client:  srv.Client(),
		baseURL: srv.URL,
		token:   "test-token",
		model:   "black-forest-labs/flux-schnell",
	}
}

func TestSubmit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/models/black-forest-labs/flux-schnell/predictions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if got := r.Header.Get("Prefer"); got != "wait" {
			t.Errorf("unexpected prefer header: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %q", got)
		}

		var req predictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if req.Input.Prompt != "a red fox in snow" {
			t.Errorf("unexpected prompt: %q", req.Input.Prompt)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123","status":"starting"}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv).Submit(context.Background(), "a red fox in snow")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(payload) != `{"id":"abc123","status":"starting"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestSubmitRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail":"insufficient credit"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Submit(context.Background(), "a red fox in snow")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusPaymentRequired {
		t.Errorf("unexpected status code: %d", apiErr.StatusCode)
	}
	if err.Error() != "Replicate API error: insufficient credit" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestSubmitRemoteErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Submit(context.Background(), "a red fox in snow")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Replicate API error: upstream exploded" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFetchStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/predictions/abc123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"abc123","status":"succeeded","output":["https://replicate.delivery/out.webp"]}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv).FetchStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(payload) != `{"id":"abc123","status":"succeeded","output":["https://replicate.delivery/out.webp"]}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestFetchStatusTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv).FetchStatus(context.Background(), "abc123")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport errors must not be wrapped as *APIError, got %v", err)
	}
}
