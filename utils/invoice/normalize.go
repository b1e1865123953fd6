package invoice

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	reLineEdges       = regexp.MustCompile(` ?\n ?`)
	reBlankLines      = regexp.MustCompile(`\n\s*\n`)
	reAnySpace        = regexp.MustCompile(`\s+`)
)

// Normalize cleans OCR text while keeping its line structure: carriage
// returns become newlines, compatibility characters are folded (NFKC),
// horizontal whitespace runs collapse to one space, lines are trimmed and
// blank lines are removed. Every extractor assumes normalized input.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
	text = reHorizontalSpace.ReplaceAllString(text, " ")
	text = reLineEdges.ReplaceAllString(text, "\n")
	text = reBlankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func collapseSpace(s string) string {
	return strings.TrimSpace(reAnySpace.ReplaceAllString(s, " "))
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
