package main

import "testing"

func TestShortID(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"3f2b8c1e-0000-4000-8000-000000000000", "3f2b8c1e"},
		{"12345678", "12345678"},
		{"job-1", "job-1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
