package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern      = regexp.MustCompile(`http\S+|www\S+`)
	nonLatinPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// Normalize cleans raw text for classification: lowercased, URL-like tokens
// stripped, everything outside the Latin alphabet and whitespace removed,
// whitespace runs collapsed to single spaces. Pure and total; empty input
// yields empty output.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonLatinPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
