package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCorsMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", []string{"https://app.example"}, http.MethodGet, "https://app.example", "https://app.example", http.StatusOK},
		{"foreign origin", []string{"https://app.example"}, http.MethodGet, "https://evil.example", "", http.StatusOK},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example", "https://any.example", http.StatusOK},
		{"preflight", []string{"https://app.example"}, http.MethodOptions, "https://app.example", "https://app.example", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CorsMiddleware(tt.allowed)(ok).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
