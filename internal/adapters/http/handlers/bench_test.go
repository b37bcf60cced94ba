package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r

	return c
}

func setupHealthHandler() *HealthHandler {
	registry := ports.NewHealthRegistry()
	_ = registry.Register(memory.New())

	return NewHealthHandler(registry, NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"), nil)
}

// BenchmarkLivenessHandler covers the probe path, which must stay cheap.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		handler.Liveness(createGinContext(httptest.NewRecorder(), req))
	}
}

func BenchmarkReadinessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		handler.Readiness(createGinContext(httptest.NewRecorder(), req))
	}
}

// BenchmarkListQuotes pages through the seeded collection with a category filter.
func BenchmarkListQuotes(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)

	h := newHarness(b, seedQuotes)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes?category=Motivation&limit=10", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		h.router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
