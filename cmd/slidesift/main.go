// Command slidesift writes the Text Details and Shape Summary reports of a
// .pptx file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gnemet/SlideSift/internal/config"
	"github.com/gnemet/SlideSift/internal/pptx"
	"github.com/gnemet/SlideSift/internal/report"
	"github.com/spf13/pflag"
)

const usage = `Usage: slidesift [flags] <file.pptx>

Writes <name>_TextDetails.tsv and <name>_ShapeSummary.tsv. Exits with status 1
if either report could not be produced; the other one is still written.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("slidesift", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	flags.StringP("out-dir", "o", "", "directory for the reports (default: next to the input)")
	preview := flags.StringP("preview", "p", "", "print the text or shapes report as a table instead of writing files")
	flags.Bool("bom", false, "prefix reports with a UTF-8 byte order mark")
	flags.Int("preview-width", 40, "truncate preview cells to this many columns (0 = no limit)")
	flags.String("config", "", "path to a config file (default ./config.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "slidesift: %v\n", err)
		flags.Usage()
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	path := flags.Arg(0)

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "slidesift: %v\n", err)
		return 2
	}
	log := cfg.Log.NewLogger(stderr)

	var kind report.Kind
	if *preview != "" {
		if kind, err = report.ParseKind(*preview); err != nil {
			fmt.Fprintf(stderr, "slidesift: --preview: %v\n", err)
			return 2
		}
	}

	p, err := pptx.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "slidesift: %v\n", err)
		return 1
	}
	log.Debug("presentation loaded", "file", path, "slides", len(p.Slides))

	if kind != "" {
		records, err := report.Records(kind, p)
		if err != nil {
			fmt.Fprintf(stderr, "slidesift: %s report: %v\n", kind, err)
			return 1
		}
		if err := report.Preview(stdout, kind.Header(), records, cfg.Output.PreviewWidth); err != nil {
			fmt.Fprintf(stderr, "slidesift: %v\n", err)
			return 1
		}
		return 0
	}

	outDir := cfg.Output.Dir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(stderr, "slidesift: %v\n", err)
		return 1
	}

	status := 0
	res := report.FromPresentation(path, p, report.Options{BOM: cfg.Output.BOM})
	for _, out := range res.Outputs() {
		if out.Err != nil {
			fmt.Fprintf(stderr, "slidesift: %s report: %v\n", out.Kind, out.Err)
			status = 1
			continue
		}
		dst := filepath.Join(outDir, out.Filename)
		if err := os.WriteFile(dst, out.Content, 0644); err != nil {
			fmt.Fprintf(stderr, "slidesift: %v\n", err)
			status = 1
			continue
		}
		log.Info("report written", "report", out.Kind, "path", dst, "bytes", len(out.Content))
		fmt.Fprintln(stdout, dst)
	}
	return status
}
