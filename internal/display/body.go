package display

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxBodyText = 200

// BodyText reduces an error response body to a single line of text. HTML
// pages (proxy and gateway errors) are stripped to their title or text.
func BodyText(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	if looksLikeHTML(body) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
			text := strings.TrimSpace(doc.Find("title").First().Text())
			if text == "" {
				doc.Find("script, style").Remove()
				text = doc.Find("body").Text()
			}
			if text = collapse(text); text != "" {
				body = text
			}
		}
	}

	return truncate(collapse(body), maxBodyText)
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
