// Package palette assigns display colors to user-defined categories.
package palette

import (
	"math/rand"
	"strings"
)

// Colors is the fixed category palette, in assignment order.
var Colors = []string{
	"#6D28D9",
	"#D946EF",
	"#059669",
	"#D97706",
	"#2563EB",
	"#7C3AED",
	"#DC2626",
	"#4B5563",
	"#0D9488",
}

// Pick returns the first palette color not present in used. Comparison is
// case-insensitive and blank entries are ignored. When the whole palette is
// taken it returns a random palette color, so categories beyond the ninth
// still get a valid color.
func Pick(used []string) string {
	taken := make(map[string]bool, len(used))
	for _, c := range used {
		if c == "" {
			continue
		}
		taken[strings.ToLower(c)] = true
	}
	for _, c := range Colors {
		if !taken[strings.ToLower(c)] {
			return c
		}
	}
	return Colors[rand.Intn(len(Colors))]
}
