package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments often will cite passages from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Font format versions recognized in the first four bytes of a font file.
const (
	fontTypeOTTO     uint32 = 0x4f54544f // 'OTTO', CFF outlines
	fontTypeTrueType uint32 = 0x00010000 // TrueType outlines
	fontTypeAppleTT  uint32 = 0x74727565 // 'true', Apple TrueType
)

// SniffFontFormat inspects the first four bytes of a font binary and returns
// "OTF" for CFF-flavoured fonts, "TTF" for TrueType-flavoured fonts, and the
// empty string for anything unrecognized.
func SniffFontFormat(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	switch u32(data[:4]) {
	case fontTypeOTTO:
		return "OTF"
	case fontTypeTrueType, fontTypeAppleTT:
		return "TTF"
	}
	return ""
}

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse function
// returns. Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == fontTypeOTTO ||
		h.FontType == fontTypeTrueType ||
		h.FontType == fontTypeAppleTT) {
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, errFontFormat(fmt.Sprintf("table count too large: %v", err))
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, errFontFormat("invalid table offset")
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, errFontFormat(fmt.Sprintf("table %s: size calculation overflow: %v", tag, err))
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, errFontFormat(fmt.Sprintf("table %s: bounds [%d:%d] exceed font size %d",
				tag, off, tableEnd, len(src)))
		}
		if otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size); err != nil {
			return nil, err
		}
	}
	if mp := otf.tables[T("maxp")]; mp != nil {
		otf.MaxP = mp.Self().AsMaxP()
	}
	return otf, nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32) (Table, error) {
	switch t {
	case T("maxp"):
		return parseMaxP(t, b, offset, size)
	}
	tracer().Debugf("parsing table '%s' as generic table", t)
	return newTable(t, b, offset, size), nil
}

// parseMaxP parses the maxp table. The only entry we're interested in is
// the number of glyphs in the font.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	t := newMaxPTable(tag, b, offset, size)
	if size < 6 {
		return t, errFontFormat("maxp table too short")
	}
	n, err := b.u16(4)
	if err != nil {
		return t, errFontFormat("reading number of glyphs")
	}
	t.NumGlyphs = int(n)
	return t, nil
}
