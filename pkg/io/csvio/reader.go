// Package csvio reads and writes delimited text as tablekit tables.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for type inference; default 100
	Strict     bool // if true, error on short/long records
	DateFormat string
}

type Reader struct {
	r      *csv.Reader
	rc     io.Closer
	opt    ReaderOptions
	buf    [][]string
	ncol   int
	header bool
	// repair counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (or stdin for "-"), gzip aware.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReaderFrom(rc, opt)
	r.rc = rc
	return r, nil
}

// NewReaderFrom constructs a Reader over an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(src io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReaderSize(src, 64*1024)
	rr := csv.NewReader(br)
	rr.FieldsPerRecord = -1
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		d, lazy := sniffDelimiterAndQuotes(sample)
		rr.Comma = d
		rr.LazyQuotes = lazy
	} else {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// ReadHeaders reads the header record (if any) and samples rows to infer
// each column's type. Sampled rows are kept for ReadAll and streaming.
func (r *Reader) ReadHeaders() ([]tablekit.Header, error) {
	if r.header {
		return nil, fmt.Errorf("csv headers already read")
	}
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	var names []string
	sample := [][]string{}
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		sample = append(sample, cloneRecord(rec))
	}
	for i, n := range names {
		if n == "" {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}
	names = tablekit.Uniquify(names)
	r.ncol = len(names)

	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(sample) < max {
		rr, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		sample = append(sample, cloneRecord(rr))
	}

	types := parse.InferTypes(sample, len(names), r.opt.DateFormat)
	headers := make([]tablekit.Header, len(names))
	for i := range names {
		headers[i] = tablekit.Header{ID: names[i], Name: names[i], Type: types[i], Index: i}
		if types[i] == tablekit.TypeDate {
			headers[i].DateFormat = r.opt.DateFormat
		}
	}
	r.buf = sample
	r.header = true
	return headers, nil
}

// next returns the next record normalised to the header width.
func (r *Reader) next() ([]string, error) {
	var rec []string
	if len(r.buf) > 0 {
		rec = r.buf[0]
		r.buf = r.buf[1:]
	} else {
		raw, err := r.r.Read()
		if err != nil {
			return nil, err
		}
		rec = cloneRecord(raw)
	}
	return r.fit(rec)
}

func (r *Reader) fit(rec []string) ([]string, error) {
	switch {
	case len(rec) < r.ncol:
		r.shortRecords++
		if r.opt.Strict {
			return nil, fmt.Errorf("csv short record: need %d fields, got %d", r.ncol, len(rec))
		}
		rec = append(rec, make([]string, r.ncol-len(rec))...)
	case len(rec) > r.ncol:
		r.longRecords++
		if r.opt.Strict {
			return nil, fmt.Errorf("csv long record: need %d fields, got %d", r.ncol, len(rec))
		}
		rec = rec[:r.ncol]
	}
	return rec, nil
}

// ReadAll loads the rest of the input into a Table.
func (r *Reader) ReadAll() (*tablekit.Table, error) {
	headers, err := r.ReadHeaders()
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for {
		rec, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return tablekit.NewTable(headers, rows), nil
}

// ReadFile opens path and reads it whole.
func ReadFile(path string, opt ReaderOptions) (*tablekit.Table, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}

func cloneRecord(rec []string) []string {
	out := make([]string, len(rec))
	for i, v := range rec {
		out[i] = strings.ToValidUTF8(v, "?")
	}
	return out
}

func sniffDelimiterAndQuotes(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	// the first line decides
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		cnt := 0
		for _, b := range line {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount, best = cnt, c
		}
	}
	quotes := 0
	for _, b := range sample {
		if b == '"' {
			quotes++
		}
	}
	return rune(best), quotes%2 != 0
}

// Warnings returns a summary of any record repairs made while reading.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
