package main

import "testing"

func TestTrimLeadingColon(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "127.0.0.1:8080"},
		{":9000", "127.0.0.1:9000"},
		{"0.0.0.0:80", "127.0.0.1:80"},
		{"[::]:8080", "127.0.0.1:8080"},
		{"relay.local:8080", "relay.local:8080"},
	}
	for _, tt := range tests {
		if got := trimLeadingColon(tt.in); got != tt.want {
			t.Errorf("trimLeadingColon(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
