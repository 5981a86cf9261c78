// Package textutil normalizes raw email text before it enters the pipeline.
package textutil

import (
	"regexp"
	"strings"
)

var (
	trailingSpaceRe  = regexp.MustCompile(`[ \t\r\f\v]+\n`)
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

	footerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Enviado do meu iPhone`),
		regexp.MustCompile(`(?i)Enviado do meu Android`),
	}
)

// Clean trims the text, strips trailing whitespace before newlines, removes
// known mobile footers and collapses runs of three or more newlines into a
// blank line. Clean is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	t := strings.TrimSpace(text)
	t = trailingSpaceRe.ReplaceAllString(t, "\n")
	for _, pat := range footerPatterns {
		t = pat.ReplaceAllString(t, "")
	}
	t = excessNewlinesRe.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}
