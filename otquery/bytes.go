package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otsvg.query'
func tracer() tracing.Trace {
	return tracing.Select("otsvg.query")
}

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}
