package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// okHandler is a simple handler that returns 200 OK for testing middleware.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestLogging_CapturesStatusAndSize(t *testing.T) {
	handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			t.Fatal("expected *responseWriter")
		}
		if rw.Unwrap() == nil {
			t.Fatal("Unwrap() returned nil")
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
		rw.Flush()

		if rw.status != http.StatusCreated || rw.size != 5 {
			t.Errorf("captured status/size = %d/%d, want 201/5", rw.status, rw.size)
		}
	}))

	req := httptest.NewRequest("POST", "/api/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	if rec.Body.String() != "hello" {
		t.Errorf("expected body 'hello', got %q", rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		origin    string
		wantAllow bool
	}{
		{"http://localhost:5173", true},
		{"http://127.0.0.1:8080", true},
		{"http://localhost", true},
		{"http://localhost.evil.com", false},
		{"https://example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		CORS(okHandler).ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tt.wantAllow && got != tt.origin {
			t.Errorf("origin %q: Allow-Origin = %q, want echo", tt.origin, got)
		}
		if !tt.wantAllow && got != "" {
			t.Errorf("origin %q: Allow-Origin = %q, want empty", tt.origin, got)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/members/demo/earn", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	CORS(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
}

func TestIPAllowlist(t *testing.T) {
	al := NewIPAllowlist([]string{"8.8.8.8", " 203.0.113.0/24 ", "not-an-ip", "10.0.0.0/99"})

	allowed := []string{"127.0.0.1", "::1", "10.1.2.3", "172.16.0.1", "192.168.1.100", "8.8.8.8", "203.0.113.7"}
	for _, ip := range allowed {
		if !al.IsAllowed(ip) {
			t.Errorf("%s should be allowed", ip)
		}
	}

	denied := []string{"1.2.3.4", "203.0.114.1", "garbage", ""}
	for _, ip := range denied {
		if al.IsAllowed(ip) {
			t.Errorf("%s should NOT be allowed", ip)
		}
	}

	al.Refresh([]string{"1.2.3.4"})
	if !al.IsAllowed("1.2.3.4") {
		t.Error("1.2.3.4 should be allowed after refresh")
	}
	if al.IsAllowed("8.8.8.8") {
		t.Error("8.8.8.8 should be dropped by refresh")
	}
}

func TestIPAllowlist_Middleware(t *testing.T) {
	al := NewIPAllowlist(nil)
	handler := al.Middleware(okHandler)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/tiers", nil)
	req.RemoteAddr = "8.8.8.8:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("public IP status = %d, want 403", rec.Code)
	}

	req.RemoteAddr = "127.0.0.1:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("loopback status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/tiers", nil)
		req.RemoteAddr = "8.8.8.8:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests = %v, want first two 200", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/tiers", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	start := time.Now()
	rl.lastSweep = start

	rl.limiterFor("1.1.1.1", start)
	rl.limiterFor("2.2.2.2", start.Add(rl.idle/2))
	if rl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rl.Len())
	}

	// Past the idle TTL only the recently seen client survives.
	rl.limiterFor("2.2.2.2", start.Add(rl.idle+time.Second))
	if rl.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", rl.Len())
	}
}
