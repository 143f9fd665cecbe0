package main

import "testing"

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input     string
		expected  int
		expectErr bool
	}{
		{"12", 12, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := parsePositiveInt(tt.input)

			if tt.expectErr {
				if err == nil {
					t.Errorf("parsePositiveInt(%q) = %d, want error", tt.input, n)
				}
				return
			}

			if err != nil {
				t.Fatalf("parsePositiveInt(%q) error = %v", tt.input, err)
			}
			if n != tt.expected {
				t.Errorf("parsePositiveInt(%q) = %d, want %d", tt.input, n, tt.expected)
			}
		})
	}
}
