package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+919876543210",
			want:  "+919876543210",
		},
		{
			name:  "with spaces",
			input: "+91 98765 43210",
			want:  "+919876543210",
		},
		{
			name:  "with dashes",
			input: "+91-98765-43210",
			want:  "+919876543210",
		},
		{
			name:  "national format defaults to India",
			input: "098765 43210",
			want:  "+919876543210",
		},
		{
			name:  "us number with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +919876543210  ",
			want:  "+919876543210",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "letters",
			input: "call me",
			want:  "",
		},
		{
			name:  "too short",
			input: "+9112",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("+91 98765 43210")
	if twice := NormalizePhone(once); twice != once {
		t.Errorf("NormalizePhone is not idempotent: %q then %q", once, twice)
	}
}
