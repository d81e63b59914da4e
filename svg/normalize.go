package svg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/otsvg/ot"
)

// Patterns for the textual rewrites. Compiled once, used by pure functions
// taking text in and returning text out.
var (
	// first id attribute inside an <svg …> opening tag
	idValuePattern = regexp.MustCompile(`(?s)<svg[^>]+?(id=".*?").+?>`)
	// coordinate-bounds attribute: four-ish integers, quoted.
	// The attribute spelling 'view_box' (underscore) is NOT valid SVG — real
	// documents spell it 'viewBox', which this pattern will never match. The
	// spelling is kept on purpose to match the established behavior of the
	// table-building tool; see the normalizer tests.
	viewBoxPattern = regexp.MustCompile(`(?s)<svg.+?(view_box=["|'][\d, ]+["|']).+?>`)
	// whitespace run strictly between a closing '>' and the next '<'
	whiteSpacePattern = regexp.MustCompile(`(?s)>\s+<`)
)

// Normalize prepares one SVG document for inclusion in a font table:
// the document's id attribute is set to the canonical "glyph<gid>" form,
// a (recognized) coordinate-bounds attribute is reset to the canonical
// 1000-unit box, inter-element whitespace is removed, and the whole document
// is trimmed.
func Normalize(raw string, gid ot.GlyphIndex) string {
	data := SetIDValue(raw, gid)
	data = FixViewBox(data)
	data = CompactWhitespace(data)
	return strings.TrimSpace(data)
}

// SetIDValue rewrites the id attribute of the document element to
// `id="glyph<gid>"`. If the element has no id attribute, one is injected
// right after the opening tag name. Only the first id-bearing opening tag
// is considered; documents with multiple root elements are not supported.
func SetIDValue(data string, gid ot.GlyphIndex) string {
	canonical := fmt.Sprintf(`id="glyph%d"`, gid)
	if m := idValuePattern.FindStringSubmatch(data); m != nil {
		return strings.ReplaceAll(data, m[1], canonical)
	}
	return strings.ReplaceAll(data, "<svg", "<svg "+canonical)
}

// FixViewBox unconditionally replaces the value of a matched bounds attribute
// with the canonical 1000×1000 unit box, offset by 1000 units vertically.
// Documents without a matching attribute are returned unchanged.
func FixViewBox(data string) string {
	m := viewBoxPattern.FindStringSubmatch(data)
	if m == nil {
		return data
	}
	return strings.ReplaceAll(data, m[1], `view_box="0 1000 1000 1000"`)
}

// CompactWhitespace collapses every whitespace run directly between a closing
// '>' and the next '<', making elements directly adjacent. The transform is
// idempotent and touches nothing inside element boundaries.
func CompactWhitespace(data string) string {
	return whiteSpacePattern.ReplaceAllString(data, "><")
}
