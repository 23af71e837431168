package parquetio

import (
	"io"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// StreamReader reads Parquet rows in chunks as Tables.
type StreamReader struct {
	r         *Reader
	chunkSize int
}

func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	r, err := OpenReader(path, opt)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 8192
	}
	return &StreamReader{r: r, chunkSize: chunkSize}, nil
}

func (s *StreamReader) Next() (*tablekit.Table, error) {
	rows := make([][]string, 0, s.chunkSize)
	for len(rows) < s.chunkSize {
		row, err := s.r.next()
		if err == io.EOF {
			if len(rows) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return tablekit.NewTable(s.r.headers, rows), nil
}

func (s *StreamReader) Headers() []tablekit.Header { return s.r.headers }
func (s *StreamReader) Close() error               { return s.r.Close() }

// StreamWriter writes Tables to a Parquet file incrementally. The Parquet
// schema is fixed by the first chunk. A later cell in a DOUBLE column is
// cleaned with parse.NumberStrict; if it still is not a number, Write fails.
type StreamWriter struct {
	path string
	w    *tableWriter
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	return &StreamWriter{path: path}, nil
}

func (s *StreamWriter) Write(t *tablekit.Table) error {
	if s.w == nil {
		w, err := newTableWriter(s.path, t)
		if err != nil {
			return err
		}
		s.w = w
	}
	return s.w.write(t)
}

func (s *StreamWriter) Close() error {
	if s.w == nil {
		return nil
	}
	return s.w.close()
}
