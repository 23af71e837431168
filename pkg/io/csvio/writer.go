package csvio

import (
	"encoding/csv"
	"io"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// Write writes t with a header record of display names.
func Write(w io.Writer, t *tablekit.Table, opt WriterOptions) error {
	cw := newCSVWriter(w, opt)
	if err := cw.Write(headerNames(t.Headers)); err != nil {
		return err
	}
	if err := writeRows(cw, t); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes t to path (stdout for "-"), gzip compressed for .gz.
func WriteAll(path string, t *tablekit.Table, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, t, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func newCSVWriter(w io.Writer, opt WriterOptions) *csv.Writer {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	return cw
}

func headerNames(headers []tablekit.Header) []string {
	hdr := make([]string, len(headers))
	for i, h := range headers {
		hdr[i] = h.Name
	}
	return hdr
}

func writeRows(cw *csv.Writer, t *tablekit.Table) error {
	row := make([]string, len(t.Headers))
	for _, r := range t.Rows {
		for c := range row {
			row[c] = tablekit.Cell(r, c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
