package ot

import (
	"encoding/binary"
	"math/bits"
	"sort"
)

// Serialization of a font's SFNT container after a table has been added or
// replaced. Table payloads are carried over verbatim; the offset table, the
// table directory, per-table checksums and the checksum adjustment in 'head'
// are recomputed.

const (
	offsetTableSize  = 12 // sfntVersion + numTables + binary search helpers
	tableRecordSize  = 16 // tag + checksum + offset + length
	checksumAdjMagic = 0xB1B0AFBA
	headAdjOffset    = 8 // byte position of checkSumAdjustment within 'head'
)

// SVGDocumentRecord pairs one SVG document with the glyph ID range it covers.
// The document bytes are stored uncompressed.
type SVGDocumentRecord struct {
	Document   []byte
	StartGlyph GlyphIndex
	EndGlyph   GlyphIndex
}

// SerializeSVGTable builds the binary payload of an OpenType 'SVG ' table
// (version 0) from a list of document records. Records are expected to be
// sorted ascending by start glyph ID with non-overlapping ranges; this
// function does not reorder them.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/svg.
func SerializeSVGTable(records []SVGDocumentRecord) []byte {
	// SVG table header:
	//   uint16   version             (= 0)
	//   Offset32 svgDocumentListOffset
	//   uint32   reserved            (= 0)
	const headerSize = 10
	const docRecordSize = 12 // startGlyphID + endGlyphID + svgDocOffset + svgDocLength
	listSize := 2 + len(records)*docRecordSize
	total := headerSize + listSize
	for _, rec := range records {
		total += len(rec.Document)
	}
	b := make([]byte, 0, total)
	b = appendU16(b, 0)          // version
	b = appendU32(b, headerSize) // svgDocumentListOffset
	b = appendU32(b, 0)          // reserved
	// SVG document list; document offsets are relative to the list start
	b = appendU16(b, uint16(len(records)))
	docOffset := uint32(listSize)
	for _, rec := range records {
		b = appendU16(b, uint16(rec.StartGlyph))
		b = appendU16(b, uint16(rec.EndGlyph))
		b = appendU32(b, docOffset)
		b = appendU32(b, uint32(len(rec.Document)))
		docOffset += uint32(len(rec.Document))
	}
	for _, rec := range records {
		b = append(b, rec.Document...)
	}
	return b
}

// InsertTable returns a rebuilt font binary with payload installed under the
// given tag. An existing table with the same tag is replaced. The input slice
// is left untouched.
func InsertTable(font []byte, tag Tag, payload []byte) ([]byte, error) {
	otf, err := Parse(font)
	if err != nil {
		return nil, err
	}
	payloads := make(map[Tag][]byte, len(otf.TableTags())+1)
	for _, t := range otf.TableTags() {
		payloads[t] = otf.Table(t).Binary()
	}
	payloads[tag] = payload
	if head, ok := payloads[T("head")]; ok {
		if len(head) < headAdjOffset+4 {
			// the adjustment below would write past the table's end
			return nil, errFontFormat("head table too short")
		}
		// zero out checkSumAdjustment before any checksum is taken; operate on
		// a copy, the original slice is a view into the caller's font data
		h := make([]byte, len(head))
		copy(h, head)
		binary.BigEndian.PutUint32(h[headAdjOffset:], 0)
		payloads[T("head")] = h
	}
	tags := make([]Tag, 0, len(payloads))
	for t := range payloads {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	// "The Offset Table is followed immediately by the Table Record entries."
	numTables := uint16(len(tags))
	entrySelector := uint16(bits.Len16(numTables) - 1)
	searchRange := uint16(1) << (entrySelector + 4)
	b := make([]byte, 0, estimateFontSize(payloads))
	b = appendU32(b, otf.Header.FontType)
	b = appendU16(b, numTables)
	b = appendU16(b, searchRange)
	b = appendU16(b, entrySelector)
	b = appendU16(b, numTables*tableRecordSize-searchRange)
	b = append(b, make([]byte, int(numTables)*tableRecordSize)...) // directory, filled below

	offsets := make([]uint32, numTables)
	lengths := make([]uint32, numTables)
	for i, t := range tags {
		offsets[i] = uint32(len(b))
		lengths[i] = uint32(len(payloads[t]))
		b = append(b, payloads[t]...)
		if pad := (4 - len(b)&3) & 3; pad > 0 { // "all tables must begin on four byte boundries"
			b = append(b, make([]byte, pad)...)
		}
	}
	var headOffset uint32
	for i, t := range tags {
		pos := offsetTableSize + i*tableRecordSize
		binary.BigEndian.PutUint32(b[pos:], uint32(t))
		padded := (lengths[i] + 3) &^ 3
		binary.BigEndian.PutUint32(b[pos+4:], calcChecksum(b[offsets[i]:offsets[i]+padded]))
		binary.BigEndian.PutUint32(b[pos+8:], offsets[i])
		binary.BigEndian.PutUint32(b[pos+12:], lengths[i])
		if t == T("head") {
			headOffset = offsets[i]
		}
	}
	if headOffset != 0 {
		adj := checksumAdjMagic - calcChecksum(b)
		binary.BigEndian.PutUint32(b[headOffset+headAdjOffset:], adj)
	}
	tracer().Debugf("rebuilt font with %d tables, %d bytes", numTables, len(b))
	return b, nil
}

func estimateFontSize(payloads map[Tag][]byte) int {
	size := offsetTableSize + len(payloads)*tableRecordSize
	for _, p := range payloads {
		size += len(p) + 3
	}
	return size
}

// calcChecksum sums a byte segment as big-endian uint32 values, with the
// segment conceptually zero-padded to a multiple of four bytes.
func calcChecksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += u32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var tail [4]byte
		copy(tail[:], b)
		sum += u32(tail[:])
	}
	return sum
}

func appendU16(b []byte, n uint16) []byte {
	return append(b, byte(n>>8), byte(n))
}

func appendU32(b []byte, n uint32) []byte {
	return append(b, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}
