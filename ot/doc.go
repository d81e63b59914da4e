/*
Package ot provides low-level access to the SFNT container of OpenType
and TrueType fonts: the table directory, raw table bytes, and the
re-serialization of a font after a table has been installed or replaced.

Package `ot` will not interpret the majority of font tables, but rather
just expose them to the client. The only table decoded beyond its raw
bytes is 'maxp', as the glyph count is needed by clients resolving glyph
names. Queries over table content (glyph names, name records) are homed
in the sister package `otquery`.

Writing a font back out re-creates the offset table and the table
directory from scratch. Offsets, per-table checksums and the whole-file
checksum adjustment in 'head' are recomputed; table payloads are carried
over unchanged.

# Status

Font collections (*.ttc) and variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otsvg.ot'
func tracer() tracing.Trace {
	return tracing.Select("otsvg.ot")
}
