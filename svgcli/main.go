package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/otsvg"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// traceKeys are the tracing channels of this module.
var traceKeys = []string{"otsvg", "otsvg.ot", "otsvg.query", "otsvg.svg"}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.otsvg":     "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Printf("To run this tool type:\n  %s <path to input OTF/TTF file>  "+
			"<path to folder tree containing SVG files>\n", os.Args[0])
		return
	}
	switch *tlevel {
	case "Debug":
		setTraceLevels(tracing.LevelDebug)
	case "Info":
		setTraceLevels(tracing.LevelInfo)
	case "Error":
		setTraceLevels(tracing.LevelError)
	default:
		pterm.Error.Printf("Invalid trace level: %s\n", *tlevel)
		os.Exit(2)
	}

	report, err := otsvg.AddTable(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	if report.FontName != "" {
		pterm.Info.Printf("Font is %s\n", report.FontName)
	}
	fmt.Fprintf(os.Stderr, "SVG table successfully added to %s\n", report.FontPath)
}

func setTraceLevels(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
