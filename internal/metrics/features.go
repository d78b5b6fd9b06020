package metrics

import (
	"strings"
	"unicode/utf8"
)

// OutputFeatures holds basic size features of a tool's text output, recorded
// alongside tool execution events.
type OutputFeatures struct {
	Bytes int
	Runes int
	Words int
}

// CountOutput computes byte, rune, and word counts for a tool output string.
func CountOutput(s string) OutputFeatures {
	return OutputFeatures{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
}
