package main

import (
	"net/http/httptest"
	"testing"
)

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:5173", true},
		{"http://example.com", true},
		{"http://evil.test", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "http://example.com/api/notifications/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}

	r := httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("Origin", "http://anywhere.test")
	if !originChecker([]string{"*"})(r) {
		t.Error("expected wildcard to allow")
	}
}
