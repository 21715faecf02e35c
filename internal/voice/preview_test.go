package voice

import "testing"

func TestFormatTranscriptPreview(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"whitespace only", " \n\t ", 12, ""},
		{"collapses runs", "  hello\t\nworld  ", 32, "hello world"},
		{"truncates with ellipsis", "alpha beta gamma", 8, "alpha..."},
		{"minimum length floor", "abcdef", 2, "a..."},
		{"control chars collapse", "a\x01\x02b", 16, "a b"},
		{"fits exactly", "12345678", 8, "12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTranscriptPreview(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("FormatTranscriptPreview(%q, %d) = %q, want %q",
					tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}
