package tablekit

import (
	"context"
	"errors"
	"io"
)

// ErrNotStreamable is returned when a pipeline contains a step that needs the whole table.
var ErrNotStreamable = errors.New("pipeline has steps that are not row-local")

// ChunkSource yields tables in chunks until io.EOF.
type ChunkSource interface {
	Next() (*Table, error)
}

// ChunkSink consumes tables, typically writing them out.
type ChunkSink interface {
	Write(*Table) error
	Close() error
}

// RunStream pulls chunks from src, applies the pipeline, and writes to sink.
// A sink Close error is returned when nothing failed before it.
func RunStream(ctx context.Context, p *Pipeline, src ChunkSource, sink ChunkSink) (err error) {
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()
	if !p.Streamable() {
		return ErrNotStreamable
	}
	for {
		t, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		out, err := p.Run(ctx, t)
		if err != nil {
			return err
		}
		if err := sink.Write(out); err != nil {
			return err
		}
	}
}
