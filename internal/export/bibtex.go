// Package export serializes citation records to BibTeX.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/litnote/litnote/internal/fields"
)

// ToBibTeX renders one entry. Fields with an empty value are omitted; the
// rest keep their order and are escaped with EscapeValue.
func ToBibTeX(entryType, alias string, entries []fields.Entry) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, alias))
	for _, e := range entries {
		if e.Value == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("\t%s={%s},\n", e.Name, EscapeValue(e.Value)))
	}

	out := strings.TrimSuffix(b.String(), ",\n")
	return out + "\n}"
}

// ToBibTeXList joins rendered entries with a blank line between them.
func ToBibTeXList(entries []string) string {
	var out []string
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n\n") + "\n"
}

// EscapeValue unescapes HTML entities and then escapes "&". Nothing else is
// touched.
func EscapeValue(s string) string {
	return strings.ReplaceAll(html.UnescapeString(s), "&", `\&`)
}
