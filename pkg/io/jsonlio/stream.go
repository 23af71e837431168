package jsonlio

import (
	"io"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type StreamReader struct {
	r         *Reader
	chunkSize int
}

func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadHeaders(); err != nil {
		_ = r.Close()
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
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

type StreamWriter struct {
	out io.WriteCloser
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{out: out}, nil
}

func (s *StreamWriter) Write(t *tablekit.Table) error { return Write(s.out, t) }
func (s *StreamWriter) Close() error                  { return s.out.Close() }
