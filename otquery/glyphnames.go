package otquery

import (
	"iter"

	"github.com/npillmayer/otsvg/ot"
)

// Glyph names live in OpenType table 'post'. Version 1.0 declares the font to
// use the standard Macintosh glyph order verbatim; version 2.0 maps each glyph
// to either a standard name or an entry in a trailing string data block.
// Versions 2.5 and 3.0 carry no (reconstructible) names.

const postHeaderSize = 32

// GlyphNamesRange yields `(glyph ID, glyph name)` pairs for all named glyphs
// of a font, in ascending glyph ID order.
//
// Fonts whose 'post' table is missing, malformed, or of a version without
// name data (2.5, 3.0) yield nothing.
func GlyphNamesRange(otf *ot.Font) iter.Seq2[ot.GlyphIndex, string] {
	names := postGlyphNames(otf)
	return func(yield func(ot.GlyphIndex, string) bool) {
		for gid, name := range names {
			if name == "" {
				continue
			}
			if !yield(ot.GlyphIndex(gid), name) {
				return
			}
		}
	}
}

// GlyphIndexForName returns the glyph ID for an exact-match glyph name.
// No fuzzy matching, no case-folding, no fallback naming schemes.
func GlyphIndexForName(otf *ot.Font, name string) (ot.GlyphIndex, bool) {
	for gid, glyphName := range GlyphNamesRange(otf) {
		if glyphName == name {
			return gid, true
		}
	}
	return 0, false
}

// postGlyphNames decodes table 'post' into a slice of glyph names, indexed by
// glyph ID. Unnamed or undecodable glyphs are left as empty strings.
func postGlyphNames(otf *ot.Font) []string {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("post"))
	if table == nil {
		tracer().Debugf("no post table found in font")
		return nil
	}
	b := table.Binary()
	if len(b) < postHeaderSize {
		tracer().Debugf("post table too short: %d", len(b))
		return nil
	}
	switch version := u32(b[0:4]); version {
	case 0x00010000:
		return standardOrderNames(otf.NumGlyphs())
	case 0x00020000:
		return customOrderNames(otf, b)
	default:
		tracer().Debugf("post table version %#x carries no glyph names", version)
		return nil
	}
}

func standardOrderNames(numGlyphs int) []string {
	if numGlyphs <= 0 || numGlyphs > len(macGlyphNames) {
		numGlyphs = len(macGlyphNames)
	}
	names := make([]string, numGlyphs)
	copy(names, macGlyphNames[:numGlyphs])
	return names
}

func customOrderNames(otf *ot.Font, b []byte) []string {
	if len(b) < postHeaderSize+2 {
		tracer().Debugf("post table v2.0 missing glyph count")
		return nil
	}
	count := int(u16(b[postHeaderSize : postHeaderSize+2]))
	if n := otf.NumGlyphs(); n > 0 && n != count {
		tracer().Infof("post table glyph count %d does not match maxp count %d", count, n)
	}
	indexEnd := postHeaderSize + 2 + count*2
	if len(b) < indexEnd {
		tracer().Debugf("post table v2.0 glyph name index out of bounds")
		return nil
	}
	// trailing block of length-prefixed strings
	var stringData []string
	for rest := b[indexEnd:]; len(rest) > 0; {
		strLen := int(rest[0])
		if 1+strLen > len(rest) {
			tracer().Debugf("post table string data truncated")
			break
		}
		stringData = append(stringData, string(rest[1:1+strLen]))
		rest = rest[1+strLen:]
	}
	names := make([]string, count)
	for i := range count {
		index := int(u16(b[postHeaderSize+2+i*2:]))
		if index < len(macGlyphNames) {
			names[i] = macGlyphNames[index]
		} else if index-len(macGlyphNames) < len(stringData) {
			names[i] = stringData[index-len(macGlyphNames)]
		}
	}
	return names
}
