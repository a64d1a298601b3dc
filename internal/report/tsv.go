package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options controls TSV serialization.
type Options struct {
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet
	// tools detect the encoding.
	BOM bool
}

// Control characters that would break column alignment are written as
// backslash escapes.
var fieldEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\r", `\r`,
	"\n", `\n`,
	"\v", `\v`,
)

// EscapeField applies the in-field escaping used by Write.
func EscapeField(s string) string {
	return fieldEscaper.Replace(s)
}

// Write serializes header and records as tab-separated values.
func Write(w io.Writer, header []string, records [][]string, opts Options) error {
	var bom io.WriteCloser
	if opts.BOM {
		bom = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		w = bom
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	fields := make([]string, 0, len(header))
	for i, rec := range records {
		fields = fields[:0]
		for _, f := range rec {
			fields = append(fields, EscapeField(f))
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing records: %w", err)
	}

	if bom != nil {
		return bom.Close()
	}
	return nil
}
