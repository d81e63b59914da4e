/*
Package otsvg adds an 'SVG ' color-glyph table to a TTF or OTF font.

The file names of the SVG artwork files need to match their corresponding
glyph final names. Given a font and a directory tree of artwork, the
pipeline discovers candidate files, validates that each carries an SVG
document element, binds each file to a glyph ID through the font's glyph
names, normalizes the document text, and assembles an ordered table which
is then installed into the font's table directory.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otsvg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/npillmayer/otsvg/ot"
	"github.com/npillmayer/otsvg/otquery"
	"github.com/npillmayer/otsvg/svg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsvg'
func tracer() tracing.Trace {
	return tracing.Select("otsvg")
}

// TableTag is the table directory tag of the OpenType SVG table:
// three letters plus one trailing space.
var TableTag = ot.T("SVG ")

// Fatal conditions of a run. Per-file problems (unreadable artwork, missing
// glyph names) are warnings only; a run fails when nothing at all is left.
var (
	ErrNotAFont   = errors.New("the path is not a valid OTF or TTF font")
	ErrNoSVGFiles = errors.New("no SVG files were found")
	ErrNoArtwork  = errors.New("could not find any artwork files that can be added to the font")
)

// Binding pairs a resolved glyph ID with its normalized document text.
type Binding struct {
	Glyph    ot.GlyphIndex
	Document string
}

// TableRecord is one entry of the assembled SVG table: a document plus the
// glyph ID range it covers. This pipeline never produces multi-glyph ranges,
// so StartGlyph == EndGlyph == Glyph always holds.
type TableRecord struct {
	Glyph      ot.GlyphIndex
	Document   string
	StartGlyph ot.GlyphIndex
	EndGlyph   ot.GlyphIndex
}

// Table is an ordered sequence of records, strictly ascending by glyph ID,
// free of duplicates.
type Table []TableRecord

// mergeBinding decides between two bindings for the same glyph ID:
// the incoming one wins. Duplicates occur when two artwork files resolve to
// the same glyph, e.g. through aliased base names or case-insensitive
// file systems.
func mergeBinding(existing, incoming Binding) Binding {
	_ = existing
	return incoming
}

// Assemble collects bindings into a table, keyed by glyph ID. Duplicate glyph
// IDs are merged with mergeBinding. An empty result is a fatal condition and
// yields ErrNoArtwork.
func Assemble(bindings []Binding) (Table, error) {
	docs := make(map[ot.GlyphIndex]Binding, len(bindings))
	for _, binding := range bindings {
		if existing, ok := docs[binding.Glyph]; ok {
			tracer().Infof("duplicate artwork for glyph ID %d, keeping the later one", binding.Glyph)
			binding = mergeBinding(existing, binding)
		}
		docs[binding.Glyph] = binding
	}
	if len(docs) == 0 {
		return nil, ErrNoArtwork
	}
	gids := make([]ot.GlyphIndex, 0, len(docs))
	for gid := range docs {
		gids = append(gids, gid)
	}
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })
	table := make(Table, len(gids))
	for i, gid := range gids {
		table[i] = TableRecord{
			Glyph:      gid,
			Document:   docs[gid].Document,
			StartGlyph: gid,
			EndGlyph:   gid,
		}
	}
	return table, nil
}

// BuildTable binds validated candidates to glyph IDs of a font, normalizes
// each document, and assembles the ordered table. Candidates whose base name
// does not match a glyph name, or whose content cannot be read, are dropped
// with a diagnostic; the remaining candidates continue processing.
// fontFileName is used for diagnostics only.
func BuildTable(otf *ot.Font, fontFileName string, candidates []svg.Candidate) (Table, error) {
	glyphIDs := make(map[string]ot.GlyphIndex)
	for gid, name := range otquery.GlyphNamesRange(otf) {
		glyphIDs[name] = gid
	}
	bindings := make([]Binding, 0, len(candidates))
	for _, c := range candidates {
		gid, ok := glyphIDs[c.BaseName]
		if !ok {
			tracer().Errorf("ERROR: Could not find a glyph named %s in the font %s.",
				c.BaseName, fontFileName)
			continue
		}
		text, err := c.ReadText()
		if err != nil {
			tracer().Errorf("ERROR: Could not read artwork file %s: %v", c.Path, err)
			continue
		}
		bindings = append(bindings, Binding{Glyph: gid, Document: svg.Normalize(text, gid)})
	}
	return Assemble(bindings)
}

// Report summarizes a successful AddTable run.
type Report struct {
	FontPath string // path the augmented font was written back to
	FontName string // full font name, if the 'name' table yields one
	Records  int    // number of records in the installed table
}

// AddTable runs the complete pipeline over one font and one directory tree
// of artwork files, and persists the augmented font back to fontPath.
// Documents are stored uncompressed. On any fatal condition the font file is
// left untouched.
func AddTable(fontPath, artworkDir string) (*Report, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("the path to the font is invalid: %w", err)
	}
	if ot.SniffFontFormat(data) == "" {
		return nil, ErrNotAFont
	}
	candidates, err := svg.Discover(artworkDir)
	if err != nil {
		return nil, err
	}
	candidates = svg.ValidateAll(candidates)
	if len(candidates) == 0 {
		return nil, ErrNoSVGFiles
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	table, err := BuildTable(otf, filepath.Base(fontPath), candidates)
	if err != nil {
		return nil, err
	}
	records := make([]ot.SVGDocumentRecord, len(table))
	for i, rec := range table {
		records[i] = ot.SVGDocumentRecord{
			Document:   []byte(rec.Document),
			StartGlyph: rec.StartGlyph,
			EndGlyph:   rec.EndGlyph,
		}
	}
	rebuilt, err := ot.InsertTable(data, TableTag, ot.SerializeSVGTable(records))
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(fontPath, rebuilt, 0644); err != nil {
		return nil, fmt.Errorf("writing augmented font: %w", err)
	}
	report := &Report{
		FontPath: fontPath,
		Records:  len(table),
	}
	if f, err := ParseOpenTypeFont(data); err == nil {
		report.FontName = f.Fontname
	} else if name := otquery.FontName(otf); name != "" {
		report.FontName = name
	}
	tracer().Infof("SVG table with %d records added to %s", len(table), fontPath)
	return report, nil
}
