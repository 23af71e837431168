// Package parquetio reads Parquet files with segmentio/parquet-go and writes
// them with xitongsys/parquet-go.
package parquetio

import (
	"fmt"
	"io"
	"os"
	"strconv"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type ReaderOptions struct {
	SampleRows int // rows used to infer types of byte-array columns; default 100
	DateFormat string
}

// Reader walks the row groups of a Parquet file, yielding string rows.
type Reader struct {
	file    *os.File
	pf      *parquet.File
	opt     ReaderOptions
	leaves  []int // leaf column index per header
	binary  []bool
	headers []tablekit.Header

	groups []parquet.RowGroup
	rows   parquet.Rows
	rowBuf []parquet.Row
	buf    [][]string
}

func OpenReader(path string, opt ReaderOptions) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	r := &Reader{file: f, pf: pf, opt: opt, groups: pf.RowGroups(), rowBuf: make([]parquet.Row, 256)}
	if err := r.readHeaders(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeaders() error {
	schema := r.pf.Schema()
	leafOf := make(map[string]int)
	for i, path := range schema.Columns() {
		if len(path) > 0 {
			if _, seen := leafOf[path[0]]; !seen {
				leafOf[path[0]] = i
			}
		}
	}
	fields := schema.Fields()
	r.headers = make([]tablekit.Header, len(fields))
	r.leaves = make([]int, len(fields))
	r.binary = make([]bool, len(fields))
	for i, f := range fields {
		r.leaves[i] = leafOf[f.Name()]
		typ := tablekit.TypeText
		if f.Leaf() {
			switch f.Type().Kind() {
			case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
				typ = tablekit.TypeNumber
			case parquet.ByteArray, parquet.FixedLenByteArray:
				r.binary[i] = true
			}
		}
		r.headers[i] = tablekit.Header{ID: f.Name(), Name: f.Name(), Type: typ, Index: i}
	}

	// string columns get their type from a sample of values
	n := r.opt.SampleRows
	if n <= 0 {
		n = 100
	}
	for len(r.buf) < n {
		row, err := r.readRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		r.buf = append(r.buf, row)
	}
	inferred := parse.InferTypes(r.buf, len(fields), r.opt.DateFormat)
	for i := range r.headers {
		if r.binary[i] {
			r.headers[i].Type = inferred[i]
			if inferred[i] == tablekit.TypeDate {
				r.headers[i].DateFormat = r.opt.DateFormat
			}
		}
	}
	return nil
}

// readRow returns the next row from the underlying row groups.
func (r *Reader) readRow() ([]string, error) {
	for {
		if r.rows == nil {
			if len(r.groups) == 0 {
				return nil, io.EOF
			}
			r.rows = r.groups[0].Rows()
			r.groups = r.groups[1:]
		}
		n, err := r.rows.ReadRows(r.rowBuf[:1])
		if n == 1 {
			return r.convert(r.rowBuf[0]), nil
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
		_ = r.rows.Close()
		r.rows = nil
	}
}

func (r *Reader) convert(row parquet.Row) []string {
	out := make([]string, len(r.headers))
	for i, leaf := range r.leaves {
		if leaf < len(row) {
			out[i] = valueString(row[leaf])
		}
	}
	return out
}

func valueString(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return parse.FormatNumber(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

func (r *Reader) next() ([]string, error) {
	if len(r.buf) > 0 {
		row := r.buf[0]
		r.buf = r.buf[1:]
		return row, nil
	}
	return r.readRow()
}

func (r *Reader) Headers() []tablekit.Header { return r.headers }

func (r *Reader) ReadAll() (*tablekit.Table, error) {
	rows := make([][]string, 0, r.pf.NumRows())
	for {
		row, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return tablekit.NewTable(r.headers, rows), nil
}

func (r *Reader) Close() error {
	if r.rows != nil {
		_ = r.rows.Close()
		r.rows = nil
	}
	return r.file.Close()
}

func ReadFile(path string, opt ReaderOptions) (*tablekit.Table, error) {
	r, err := OpenReader(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}
