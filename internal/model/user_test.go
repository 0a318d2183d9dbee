package model

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		isNil bool
	}{
		{"", "", true},
		{"   ", "", true},
		{"+1234567890", "+1234567890", false},
		{"  +386 40 123 456 ", "+386 40 123 456", false},
	}

	for _, tt := range tests {
		got := NormalizePhone(tt.in)
		if tt.isNil {
			if got != nil {
				t.Errorf("NormalizePhone(%q) = %q, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("NormalizePhone(%q) = %v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  a@x.com "); got != "a@x.com" {
		t.Errorf("expected 'a@x.com', got %q", got)
	}
}
