package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// whitespaceRun matches any run of whitespace, including newlines and tabs.
var whitespaceRun = regexp.MustCompile(`\s+`)

// markdownSpecial matches characters that would be read as markdown syntax.
var markdownSpecial = regexp.MustCompile("([\\\\`*_{}\\[\\]<>()#+\\-!|~])")

// Line collapses text into a single printable line: control and format characters are
// dropped and whitespace runs become one space. Document writers place text by line, so
// embedded newlines or tabs would otherwise overprint.
func Line(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Markdown returns Line(s) with markdown syntax characters backslash-escaped.
func Markdown(s string) string {
	return markdownSpecial.ReplaceAllString(Line(s), `\$1`)
}
