package otquery

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/otsvg/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// buildFontWithPost assembles a minimal font binary from head, maxp and a
// given post table, and parses it. Checksums are left zero.
func buildFontWithPost(t *testing.T, numGlyphs uint16, post []byte) *ot.Font {
	t.Helper()
	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp, 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:], numGlyphs)
	tables := []struct {
		tag  string
		data []byte
	}{ // sorted by tag
		{"head", make([]byte, 54)},
		{"maxp", maxp},
		{"post", post},
	}
	b := appendBE16(appendBE32(nil, 0x00010000), uint16(len(tables)), 0, 0, 0)
	offset := 12 + len(tables)*16
	for _, table := range tables {
		b = appendBE32(b, uint32(ot.T(table.tag)), 0, uint32(offset), uint32(len(table.data)))
		offset += (len(table.data) + 3) &^ 3
	}
	for _, table := range tables {
		b = append(b, table.data...)
		if pad := (4 - len(b)&3) & 3; pad > 0 {
			b = append(b, make([]byte, pad)...)
		}
	}
	otf, err := ot.Parse(b)
	if err != nil {
		t.Fatalf("synthetic font does not parse: %v", err)
	}
	return otf
}

func appendBE16(b []byte, values ...uint16) []byte {
	for _, v := range values {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

func appendBE32(b []byte, values ...uint32) []byte {
	for _, v := range values {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	return b
}

// postV2 assembles a post table version 2.0 from glyph name indices and the
// trailing block of length-prefixed custom names.
func postV2(indices []uint16, customNames []string) []byte {
	post := make([]byte, postHeaderSize)
	binary.BigEndian.PutUint32(post, 0x00020000)
	post = appendBE16(post, uint16(len(indices)))
	post = appendBE16(post, indices...)
	for _, name := range customNames {
		post = append(post, byte(len(name)))
		post = append(post, name...)
	}
	return post
}

func postVersionOnly(version uint32) []byte {
	post := make([]byte, postHeaderSize)
	binary.BigEndian.PutUint32(post, version)
	return post
}

func TestGlyphNamesCustomOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.query")
	defer teardown()
	//
	// glyphs 0/1/4 use standard Macintosh names, 2/3 use custom names
	post := postV2([]uint16{0, 36, 258, 259, 3}, []string{"heart.alt", "star"})
	otf := buildFontWithPost(t, 5, post)
	expected := map[string]ot.GlyphIndex{
		"A":         1,
		"heart.alt": 2,
		"star":      3,
		"space":     4,
	}
	for name, gid := range expected {
		found, ok := GlyphIndexForName(otf, name)
		if !ok || found != gid {
			t.Errorf("expected glyph %q at ID %d, have %d (found=%v)", name, gid, found, ok)
		}
	}
	if _, ok := GlyphIndexForName(otf, "Z.alt"); ok {
		t.Errorf("expected lookup of an unknown glyph name to fail")
	}
}

func TestGlyphNamesRangeAscending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.query")
	defer teardown()
	//
	post := postV2([]uint16{0, 259, 258}, []string{"first", "second"})
	otf := buildFontWithPost(t, 3, post)
	var gids []ot.GlyphIndex
	for gid := range GlyphNamesRange(otf) {
		gids = append(gids, gid)
	}
	if len(gids) != 3 {
		t.Fatalf("expected 3 named glyphs, have %d", len(gids))
	}
	for i := 1; i < len(gids); i++ {
		if gids[i] <= gids[i-1] {
			t.Errorf("expected ascending glyph IDs, have %v", gids)
		}
	}
}

func TestGlyphNamesStandardOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.query")
	defer teardown()
	//
	otf := buildFontWithPost(t, 4, postVersionOnly(0x00010000))
	gid, ok := GlyphIndexForName(otf, "space")
	if !ok || gid != 3 {
		t.Errorf("expected 'space' at glyph ID 3 in standard order, have %d (found=%v)", gid, ok)
	}
	if _, ok := GlyphIndexForName(otf, "A"); ok {
		t.Errorf("expected names beyond the declared glyph count to be absent")
	}
}

func TestGlyphNamesVersionWithoutNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otsvg.query")
	defer teardown()
	//
	otf := buildFontWithPost(t, 4, postVersionOnly(0x00030000))
	count := 0
	for range GlyphNamesRange(otf) {
		count++
	}
	if count != 0 {
		t.Errorf("expected a v3.0 post table to yield no names, have %d", count)
	}
}
