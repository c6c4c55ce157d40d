package practicum

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxDetailLength = 200

// summarizeBody turns an error response into a short single-line detail.
// Gateway HTML pages collapse to their title, API errors to "code: message".
func summarizeBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if strings.Contains(strings.ToLower(contentType), "html") || trimmed[0] == '<' {
		if title := htmlTitle(trimmed); title != "" {
			return truncate(title)
		}
	}

	if trimmed[0] == '{' {
		if detail := apiErrorDetail(trimmed); detail != "" {
			return truncate(detail)
		}
	}

	return truncate(strings.Join(strings.Fields(string(trimmed)), " "))
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	for _, selector := range []string{"title", "h1"} {
		text := strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
		if text != "" {
			return text
		}
	}
	return ""
}

func apiErrorDetail(body []byte) string {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	switch {
	case payload.Code != "" && message != "":
		return payload.Code + ": " + message
	case payload.Code != "":
		return payload.Code
	default:
		return message
	}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDetailLength {
		return s
	}
	return string(runes[:maxDetailLength]) + "..."
}
