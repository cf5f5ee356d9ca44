package detail

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from an upstream description and collapses
// whitespace. Links keep their text. Script and style bodies are dropped.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input: keep what was read so far.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "li", "div":
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "li", "div":
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}
