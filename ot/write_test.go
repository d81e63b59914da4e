package ot

import (
	"encoding/binary"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// buildTestFont assembles a minimal SFNT binary from raw table payloads.
// Checksums are left zero; Parse ignores them.
func buildTestFont(t *testing.T, tables map[string][]byte) []byte {
	t.Helper()
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	b := appendU32(nil, fontTypeTrueType)
	b = appendU16(b, uint16(len(tags)))
	b = appendU16(b, 0) // search helpers are not inspected by Parse
	b = appendU16(b, 0)
	b = appendU16(b, 0)
	offset := offsetTableSize + len(tags)*tableRecordSize
	for _, tag := range tags {
		b = appendU32(b, uint32(T(tag)))
		b = appendU32(b, 0) // checksum
		b = appendU32(b, uint32(offset))
		b = appendU32(b, uint32(len(tables[tag])))
		offset += (len(tables[tag]) + 3) &^ 3
	}
	for _, tag := range tags {
		b = append(b, tables[tag]...)
		if pad := (4 - len(b)&3) & 3; pad > 0 {
			b = append(b, make([]byte, pad)...)
		}
	}
	return b
}

func testMaxP(numGlyphs uint16) []byte {
	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp, 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:], numGlyphs)
	return maxp
}

func TestTags(t *testing.T) {
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("SVG")
	if tag.String() != "SVG " {
		t.Errorf("expected short tag to be padded with blanks, is %q", tag.String())
	}
}

func TestSniffFontFormat(t *testing.T) {
	cases := []struct {
		head   string
		format string
	}{
		{"OTTO", "OTF"},
		{"\x00\x01\x00\x00", "TTF"},
		{"true", "TTF"},
		{"rust", ""},
		{"", ""},
	}
	for _, c := range cases {
		if f := SniffFontFormat([]byte(c.head + "garbage")); f != c.format {
			t.Errorf("SniffFontFormat(%q): expected %q, have %q", c.head, c.format, f)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.ot")
	defer teardown()
	//
	if _, err := Parse([]byte("this is not a font at all")); err == nil {
		t.Errorf("expected parsing of garbage input to fail")
	}
}

func TestParseReadsGlyphCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.ot")
	defer teardown()
	//
	font := buildTestFont(t, map[string][]byte{
		"head": make([]byte, 54),
		"maxp": testMaxP(77),
	})
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	if otf.NumGlyphs() != 77 {
		t.Errorf("expected 77 glyphs, have %d", otf.NumGlyphs())
	}
}

func TestSerializeSVGTableLayout(t *testing.T) {
	records := []SVGDocumentRecord{
		{Document: []byte("abc"), StartGlyph: 5, EndGlyph: 5},
		{Document: []byte("defg"), StartGlyph: 9, EndGlyph: 9},
	}
	b := SerializeSVGTable(records)
	if v := u16(b[0:2]); v != 0 {
		t.Errorf("expected SVG table version 0, have %d", v)
	}
	listOffset := u32(b[2:6])
	if listOffset != 10 {
		t.Errorf("expected document list at offset 10, have %d", listOffset)
	}
	list := b[listOffset:]
	if n := u16(list[0:2]); n != 2 {
		t.Fatalf("expected 2 document records, have %d", n)
	}
	// first record: glyph range 5..5, offsets relative to the list start
	if u16(list[2:4]) != 5 || u16(list[4:6]) != 5 {
		t.Errorf("unexpected glyph range in first record")
	}
	docOff, docLen := u32(list[6:10]), u32(list[10:14])
	if string(list[docOff:docOff+docLen]) != "abc" {
		t.Errorf("first document not found at its offset")
	}
	docOff, docLen = u32(list[18:22]), u32(list[22:26])
	if string(list[docOff:docOff+docLen]) != "defg" {
		t.Errorf("second document not found at its offset")
	}
}

func TestInsertTableRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.ot")
	defer teardown()
	//
	font := buildTestFont(t, map[string][]byte{
		"head": make([]byte, 54),
		"maxp": testMaxP(3),
	})
	payload := []byte("not a real SVG table, but any payload will do")
	rebuilt, err := InsertTable(font, T("SVG "), payload)
	if err != nil {
		t.Fatal(err)
	}
	otf, err := Parse(rebuilt)
	if err != nil {
		t.Fatalf("rebuilt font does not parse: %v", err)
	}
	table := otf.Table(T("SVG "))
	if table == nil {
		t.Fatal("expected rebuilt font to contain an SVG table")
	}
	if string(table.Binary()) != string(payload) {
		t.Errorf("SVG table payload was not carried over verbatim")
	}
	if otf.NumGlyphs() != 3 {
		t.Errorf("expected maxp to survive the rebuild")
	}
	// with checkSumAdjustment in place, the whole file sums to the magic value
	if sum := calcChecksum(rebuilt); sum != checksumAdjMagic {
		t.Errorf("expected whole-file checksum %#x, have %#x", uint32(checksumAdjMagic), sum)
	}
}

func TestInsertTableRejectsShortHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.ot")
	defer teardown()
	//
	// a head table shorter than checkSumAdjustment + 4 bytes passes Parse,
	// but leaves no room for the adjustment write
	font := buildTestFont(t, map[string][]byte{
		"head": make([]byte, 4),
		"maxp": testMaxP(3),
	})
	if _, err := Parse(font); err != nil {
		t.Fatalf("truncated head must still parse, test setup is broken: %v", err)
	}
	if _, err := InsertTable(font, T("SVG "), []byte("x")); err == nil {
		t.Errorf("expected a rebuild over a truncated head table to fail")
	}
}

func TestInsertTableReplacesExisting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.ot")
	defer teardown()
	//
	font := buildTestFont(t, map[string][]byte{
		"head": make([]byte, 54),
		"maxp": testMaxP(3),
	})
	first, err := InsertTable(font, T("SVG "), []byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := InsertTable(first, T("SVG "), []byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	otf, err := Parse(second)
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.TableTags()) != 3 {
		t.Errorf("expected 3 tables after replacing, have %d", len(otf.TableTags()))
	}
	if string(otf.Table(T("SVG ")).Binary()) != "second" {
		t.Errorf("expected replacement payload to win")
	}
}
