package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dwellio/dwellio-api/pkg/cache"
	mw "github.com/dwellio/dwellio-api/pkg/middleware"
)

func TestHealth(t *testing.T) {
	handler := mw.Health(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for _, path := range []string{"/health", "/healthz"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want 200", path, rec.Code)
		}
		if rec.Body.String() != `{"status":"ok"}` {
			t.Fatalf("%s: body %q", path, rec.Body.String())
		}
	}

	// Other paths fall through.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected fallthrough, got %d", rec.Code)
	}
}

func TestCacheResponse_HitAndMiss(t *testing.T) {
	store := cache.NewMemory()
	calls := 0

	handler := mw.CacheResponse(store, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"n":1}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties?page=1", nil))
	if calls != 1 || rec.Header().Get("X-Cache") == "HIT" {
		t.Fatalf("first request should miss: calls=%d", calls)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties?page=1", nil))
	if calls != 1 {
		t.Fatalf("second request should be served from cache, handler ran %d times", calls)
	}
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Fatal("expected X-Cache: HIT")
	}
	if rec.Body.String() != `{"n":1}` {
		t.Fatalf("cached body mismatch: %q", rec.Body.String())
	}

	// Different query string is a different key.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties?page=2", nil))
	if calls != 2 {
		t.Fatalf("distinct URL should miss, handler ran %d times", calls)
	}
}

func TestCacheResponse_SkipsNonGET(t *testing.T) {
	store := cache.NewMemory()
	calls := 0

	handler := mw.CacheResponse(store, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties", nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("POST must never be cached, handler ran %d times", calls)
	}
}

func TestCacheResponse_DoesNotCacheErrors(t *testing.T) {
	store := cache.NewMemory()
	calls := 0

	handler := mw.CacheResponse(store, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error"}`))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/9", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("error responses must not be cached, handler ran %d times", calls)
	}
}
