package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(logger *slog.Logger, m *Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), StructuredLoggingMiddleware(logger, m), Recovery(logger))
	r.GET("/v1/notifications/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.POST("/echo", BodyLimit(8), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, string(body))
	})
	r.GET("/metrics", MetricsHandler(m))
	return r
}

func TestRequestID(t *testing.T) {
	router := setupRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), NewMetrics())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/notifications/1", nil)
	router.ServeHTTP(w, req)

	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 {
		t.Errorf("Expected a generated uuid request id, got %q", generated)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/v1/notifications/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected caller request id to be echoed, got %q", got)
	}
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	router := setupRouter(logger, NewMetrics())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/notifications/42", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(w, req)

	out := buf.String()
	for _, want := range []string{"request completed", "request_id=req-1", "route=/v1/notifications/:id", "status_code=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got %s", want, out)
		}
	}
}

func TestMetricsCountsRoutes(t *testing.T) {
	m := NewMetrics()
	router := setupRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), m)

	for _, path := range []string{"/v1/notifications/1", "/v1/notifications/2", "/nope"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
	}

	snap := m.Snapshot()
	if snap.TotalRequests != 3 {
		t.Errorf("Expected 3 requests, got %d", snap.TotalRequests)
	}
	if got := snap.RequestsByEndpoint["GET /v1/notifications/:id"]; got != 2 {
		t.Errorf("Expected 2 requests on the route template, got %d", got)
	}
	if got := snap.RequestsByEndpoint["GET unmatched"]; got != 1 {
		t.Errorf("Expected 1 unmatched request, got %d", got)
	}
	if got := snap.RequestsByStatus["404"]; got != 1 {
		t.Errorf("Expected 1 request with status 404, got %d", got)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"requests_by_endpoint"`) {
		t.Errorf("Expected metrics body, got %s", w.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	router := setupRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), NewMetrics())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal_error") {
		t.Errorf("Expected error body, got %s", w.Body.String())
	}
}

func TestBodyLimit(t *testing.T) {
	router := setupRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), NewMetrics())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/echo", strings.NewReader("short"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "short" {
		t.Errorf("Expected small body to pass, got %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/echo", strings.NewReader("much too long"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}
}
