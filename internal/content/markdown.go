package content

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	summaryLen     = 160
	wordsPerMinute = 200
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// post bodies are admin-authored but still rendered into public pages
	sanitizer = bluemonday.UGCPolicy()
)

// RenderHTML converts markdown to sanitized HTML.
func RenderHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	var parts []string
	doc.Find("h1,h2,h3,h4,h5,h6,p,li,blockquote,td").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("li,blockquote").Length() > 0 && goquery.NodeName(s) == "p" {
			return
		}
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}
	return strings.Join(parts, " "), nil
}

// Summarize derives a summary of at most summaryLen runes from markdown,
// cutting on a word boundary.
func Summarize(src string) (string, error) {
	html, err := RenderHTML(src)
	if err != nil {
		return "", err
	}
	text, err := PlainText(html)
	if err != nil {
		return "", err
	}
	return truncateWords(text, summaryLen), nil
}

func truncateWords(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:—-") + "…"
}

// ReadingMinutes estimates reading time from markdown, never less than one minute.
func ReadingMinutes(src string) int {
	words := len(strings.Fields(src))
	m := (words + wordsPerMinute - 1) / wordsPerMinute
	if m < 1 {
		return 1
	}
	return m
}
