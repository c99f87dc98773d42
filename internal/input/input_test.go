package input

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello world", `hello%sworld`},
		{"a&b", `a\&b`},
		{"100%", `100\%`},
		{"path/to/file", `path\/to\/file`},
		{"plain", "plain"},
		{"", ""},
		{`back\slash`, `back\\slash`},
		{"кириллица ок", "кириллица%sок"},
	}
	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
