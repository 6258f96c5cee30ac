package partition

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug turns a tag into a file-name friendly bucket name: accents are
// stripped, letters are lower-cased, runs of whitespace become '-' and any
// other character outside [a-z0-9_-] becomes '_'. Leading and trailing
// '-' and '_' are trimmed. Slug returns "" when nothing printable remains.
//
//	Slug("Pet Store")  == "pet-store"
//	Slug("Événements") == "evenements"
func Slug(tag string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, tag)
	if err != nil {
		s = tag
	}
	s = cases.Lower(language.Und).String(s)
	s = strings.ReplaceAll(s, "ß", "ss")

	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte('-')
			space = false
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "-_")
}
