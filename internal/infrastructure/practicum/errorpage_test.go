package practicum

import (
	"strings"
	"testing"
)

func TestSummarizeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"blank", "text/plain", "  \n ", ""},
		{"html title", "text/html; charset=utf-8", "<html><title>\n  502 Bad   Gateway </title></html>", "502 Bad Gateway"},
		{"html heading only", "", "<html><body><h1>Maintenance</h1></body></html>", "Maintenance"},
		{"json message only", "application/json", `{"message":"rate limited"}`, "rate limited"},
		{"json error field", "application/json", `{"error":"bad from_date"}`, "bad from_date"},
		{"json without known keys", "application/json", `{"detail":"x"}`, `{"detail":"x"}`},
		{"plain text", "text/plain", "upstream\n  timed out", "upstream timed out"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := summarizeBody(tc.contentType, []byte(tc.body)); got != tc.want {
				t.Fatalf("summarizeBody() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSummarizeBodyTruncates(t *testing.T) {
	t.Parallel()

	got := summarizeBody("text/plain", []byte(strings.Repeat("ж", 500)))
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != maxDetailLength {
		t.Fatalf("expected %d runes, got %d", maxDetailLength, n)
	}
}
