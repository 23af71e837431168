// Package jsonlio reads and writes newline-delimited JSON objects as tablekit tables.
package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type ReaderOptions struct {
	SampleRows int
	DateFormat string
}

// record is one decoded object with its keys in document order.
type record struct {
	keys   []string
	values map[string]any
}

type Reader struct {
	dec     *json.Decoder
	rc      io.Closer
	opt     ReaderOptions
	buf     []record
	headers []tablekit.Header
	pos     map[string]int
}

func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReaderFrom(rc, opt)
	r.rc = rc
	return r, nil
}

func NewReaderFrom(src io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(src)), opt: opt}
}

func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

func (r *Reader) decode() (record, error) {
	var raw json.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		return record{}, err
	}
	return decodeRecord(raw)
}

func decodeRecord(raw json.RawMessage) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return record{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return record{}, fmt.Errorf("jsonl: expected object, got %s", raw)
	}
	rec := record{values: map[string]any{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return record{}, err
		}
		key := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return record{}, err
		}
		if _, dup := rec.values[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.values[key] = v
	}
	return rec, nil
}

// ReadHeaders samples records to collect keys in first-appearance order and
// infer column types. Sampled records are kept for ReadAll and streaming.
func (r *Reader) ReadHeaders() ([]tablekit.Header, error) {
	if r.headers != nil {
		return r.headers, nil
	}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	var names []string
	r.pos = map[string]int{}
	for len(r.buf) < max {
		rec, err := r.decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		r.buf = append(r.buf, rec)
		for _, k := range rec.keys {
			if _, ok := r.pos[k]; !ok {
				r.pos[k] = len(names)
				names = append(names, k)
			}
		}
	}
	sample := make([][]string, len(r.buf))
	for i, rec := range r.buf {
		sample[i] = r.row(rec, len(names))
	}
	types := parse.InferTypes(sample, len(names), r.opt.DateFormat)
	r.headers = make([]tablekit.Header, len(names))
	for i, n := range names {
		r.headers[i] = tablekit.Header{ID: n, Name: n, Type: types[i], Index: i}
		if types[i] == tablekit.TypeDate {
			r.headers[i].DateFormat = r.opt.DateFormat
		}
	}
	return r.headers, nil
}

// row flattens rec into header order. Keys first seen after sampling are dropped.
func (r *Reader) row(rec record, ncol int) []string {
	out := make([]string, ncol)
	for k, v := range rec.values {
		if i, ok := r.pos[k]; ok && i < ncol {
			out[i] = cellString(v)
		}
	}
	return out
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func (r *Reader) next() ([]string, error) {
	if len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		return r.row(rec, len(r.headers)), nil
	}
	rec, err := r.decode()
	if err != nil {
		return nil, err
	}
	return r.row(rec, len(r.headers)), nil
}

func (r *Reader) ReadAll() (*tablekit.Table, error) {
	headers, err := r.ReadHeaders()
	if err != nil {
		return nil, err
	}
	var rows [][]string
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
	return tablekit.NewTable(headers, rows), nil
}

func ReadFile(path string, opt ReaderOptions) (*tablekit.Table, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}
