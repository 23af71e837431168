package csvio

import (
	"encoding/csv"
	"io"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// StreamReader reads CSV into Table chunks of up to chunkSize rows.
type StreamReader struct {
	r         *Reader
	headers   []tablekit.Header
	chunkSize int
}

// NewStreamReader opens path, infers headers and returns a StreamReader.
func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	rr, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	sr, err := NewStream(rr, chunkSize)
	if err != nil {
		_ = rr.Close()
		return nil, err
	}
	return sr, nil
}

// NewStream wraps an already opened Reader.
func NewStream(rr *Reader, chunkSize int) (*StreamReader, error) {
	headers, err := rr.ReadHeaders()
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	return &StreamReader{r: rr, headers: headers, chunkSize: chunkSize}, nil
}

// Next returns the next chunk or io.EOF when complete.
func (s *StreamReader) Next() (*tablekit.Table, error) {
	rows := make([][]string, 0, s.chunkSize)
	for len(rows) < s.chunkSize {
		rec, err := s.r.next()
		if err == io.EOF {
			if len(rows) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return tablekit.NewTable(s.headers, rows), nil
}

func (s *StreamReader) Headers() []tablekit.Header { return s.headers }
func (s *StreamReader) Warnings() string           { return s.r.Warnings() }
func (s *StreamReader) Close() error               { return s.r.Close() }

// StreamWriter appends tables to a CSV output, writing the header once from
// the first chunk.
type StreamWriter struct {
	w           *csv.Writer
	out         io.WriteCloser
	wroteHeader bool
}

func NewStreamWriter(path string, opt WriterOptions) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{w: newCSVWriter(out, opt), out: out}, nil
}

func (s *StreamWriter) Write(t *tablekit.Table) error {
	if !s.wroteHeader {
		if err := s.w.Write(headerNames(t.Headers)); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	if err := writeRows(s.w, t); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *StreamWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.out.Close()
		return err
	}
	return s.out.Close()
}
