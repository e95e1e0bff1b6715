package errors

import (
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		count   int
		wantErr bool
	}{
		{"first", 0, 4, false},
		{"last", 3, 4, false},
		{"past end", 4, 4, true},
		{"negative", -1, 4, true},
		{"empty graph", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id, tt.count)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%d, %d) error = %v, wantErr %v", tt.id, tt.count, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeID() code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateCacheKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid prefix key", "1050400_graph", false},
		{"valid fallback key", "graph_graph", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..graph", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCacheKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"", true},
		{"http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateRedisURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
