package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyplan/triphub/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(limit int, window time.Duration) *gin.Engine {
	r := gin.New()

	rl := middlewares.NewRateLimiter(limit, window)
	r.Use(rl.RateLimiterMiddleware(middlewares.KeyByIP))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func get(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	r := limitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if w := get(r); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	r := limitedRouter(2, time.Minute)

	get(r)
	get(r)

	w := get(r)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimiterKeysByUser(t *testing.T) {
	r := gin.New()

	rl := middlewares.NewRateLimiter(1, time.Minute)
	authMw := middlewares.NewAuthMiddleware(fakeVerifier{})

	r.Use(authMw.RequireAuth())
	r.Use(rl.RateLimiterMiddleware(middlewares.KeyByUserOrIP))

	r.GET("/trips", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	getAs := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		// same IP for everyone: buckets must split on the account
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := getAs("alice"); w.Code != http.StatusOK {
		t.Fatalf("alice first request: status %d", w.Code)
	}

	if w := getAs("alice"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("alice second request: status %d, want 429", w.Code)
	}

	if w := getAs("bob"); w.Code != http.StatusOK {
		t.Errorf("bob from the same IP: status %d, want 200", w.Code)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	r := limitedRouter(1, 20*time.Millisecond)

	get(r)

	if w := get(r); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected immediate second request blocked, got %d", w.Code)
	}

	time.Sleep(30 * time.Millisecond)

	if w := get(r); w.Code != http.StatusOK {
		t.Fatalf("expected request after window to pass, got %d", w.Code)
	}
}
