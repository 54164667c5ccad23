package enrich

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"cardkeep/internal/models"
)

// Normalize prepares free text for the scan tables: NFKC folds full-width
// ASCII and digits to half-width (and half-width katakana to full-width),
// then ASCII letters are lowered. Japanese text is otherwise untouched.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Context is the input to Enrich: the already-normalized draft text plus an
// optional URL that is parsed separately.
type Context struct {
	NormalizedText string
	URL            string
}

// ContextFor builds the enrichment context for a draft. The type field is
// deliberately excluded: the card kind must not influence tag choice.
func ContextFor(d models.Draft) Context {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Title, d.Note, d.Username} {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return Context{
		NormalizedText: Normalize(strings.Join(parts, " ")),
		URL:            strings.TrimSpace(d.URL),
	}
}

// isASCII reports whether the tag consists of ASCII only, in which case it is
// case-normalized. Full-width and Japanese tags are preserved verbatim.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
