/*
Package svg implements the document side of the SVG-table pipeline:
discovering candidate artwork files in a directory tree, a bounded-effort
check that a file carries an SVG document element, and the textual
normalization applied to each document before it enters the font.

Documents are treated as opaque text throughout. No XML parsing happens
anywhere in this package; all matching and rewriting is done with a small
set of pure, compile-once pattern functions.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package svg

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsvg.svg'
func tracer() tracing.Trace {
	return tracing.Select("otsvg.svg")
}

// Candidate is one artwork file found during discovery. Its base name (the
// file name with the extension stripped) is the glyph name the file claims
// to provide artwork for.
type Candidate struct {
	Path     string // full path of the file
	BaseName string // file name without directory and extension
}

// ReadText returns the full content of the candidate file as text.
func (c Candidate) ReadText() (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Discover walks the directory tree rooted at rootDir and returns a candidate
// for every regular file found. Nested folders are supported. No filtering
// happens here; hidden files and non-SVG content are weeded out by Validate.
func Discover(rootDir string) ([]Candidate, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("artwork folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artwork folder: %s is not a directory", rootDir)
	}
	var candidates []Candidate
	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		candidates = append(candidates, Candidate{
			Path:     path,
			BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("artwork folder: %w", err)
	}
	tracer().Debugf("discovered %d artwork candidates in %s", len(candidates), rootDir)
	return candidates, nil
}
