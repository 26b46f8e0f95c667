package fields

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainAbstract reduces a Crossref abstract (JATS markup such as
// <jats:title>Abstract</jats:title><jats:p>...</jats:p>) to a single line of
// text. A leading "Abstract" heading is dropped.
func PlainAbstract(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.Join(strings.Fields(markup), " ")
	}

	// Paragraph boundaries would otherwise glue words together.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "p", "jats:p", "jats:title", "jats:sec", "sec":
			s.AppendHtml(" ")
		}
	})

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if rest, ok := strings.CutPrefix(text, "Abstract "); ok {
		text = rest
	}
	return text
}
