package svg

import (
	"path/filepath"
	"regexp"
	"strings"
)

// svgElementPattern is a lazy scan for an opening <svg> tag followed by some
// content and a closing tag. This is deliberately NOT an XML well-formedness
// check: it accepts the first plausible open/close pair and tolerates
// malformed interior markup.
var svgElementPattern = regexp.MustCompile(`(?s)<svg[^>]*>.+?</svg>`)

// HasDocumentElement reports whether text contains an <svg> element,
// according to the bounded scan above.
func HasDocumentElement(text string) bool {
	return svgElementPattern.MatchString(text)
}

// ValidateAll performs light validation of candidate artwork files and returns
// the surviving subset.
//
// Hidden files (names starting with a period) are excluded silently. Files
// without a recognizable <svg> element, and files that cannot be read, are
// excluded with a warning. Candidate content is never modified.
func ValidateAll(candidates []Candidate) []Candidate {
	validated := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(filepath.Base(c.Path), ".") {
			continue
		}
		text, err := c.ReadText()
		if err != nil {
			tracer().Errorf("WARNING: Could not read file. Skipping %s: %v", c.Path, err)
			continue
		}
		if !HasDocumentElement(text) {
			tracer().Errorf("WARNING: Could not find <svg> element in the file. Skipping %s", c.Path)
			continue
		}
		validated = append(validated, c)
	}
	return validated
}
