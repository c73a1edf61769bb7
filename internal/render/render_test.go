package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modaria/modaria/backend-go/internal/remote"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Style != "editorial" || req.ReferenceStrength != 70 {
			t.Errorf("request fields: %+v", req)
		}
		w.Write([]byte(`{"image":"data:image/png;base64,xyz","description":"silk a-line dress","style":"editorial","prompt":"silk"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	result, err := c.Generate(context.Background(), Request{
		SketchImage:       "data:image/svg+xml;base64,abc",
		Prompt:            "silk",
		ReferenceStrength: 70,
		Style:             "editorial",
		FabricType:        "silk",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Image == "" || result.Description != "silk a-line dress" {
		t.Fatalf("result: %+v", result)
	}
}

func TestGenerate_InputValidation(t *testing.T) {
	c := NewClient("http://unused", "")
	if _, err := c.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for missing sketch")
	}
	if _, err := c.Generate(context.Background(), Request{SketchImage: "d", ReferenceStrength: 150}); err == nil {
		t.Fatal("expected error for out-of-range strength")
	}
}

func TestGenerate_QuotaExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"monthly quota exhausted"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Generate(context.Background(), Request{SketchImage: "d", ReferenceStrength: 50})

	re, ok := remote.AsError(err)
	if !ok {
		t.Fatalf("expected remote error, got %v", err)
	}
	if !re.QuotaExhausted() || re.Retryable() {
		t.Fatalf("quota error misclassified: %+v", re)
	}
}

func TestGenerateWithRetry_HonorsRetryAfter(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"slow down"}`))
			return
		}
		w.Write([]byte(`{"image":"data:image/png;base64,ok","style":"studio","prompt":"p"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := NewClient(srv.URL, "")
	result, err := c.GenerateWithRetry(ctx, Request{SketchImage: "d", ReferenceStrength: 50}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 || result.Image == "" {
		t.Fatalf("calls=%d result=%+v", calls, result)
	}
}

func TestGenerateWithRetry_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"transient"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "")
	if _, err := c.GenerateWithRetry(ctx, Request{SketchImage: "d", ReferenceStrength: 10}, 3); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
