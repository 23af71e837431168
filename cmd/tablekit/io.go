package main

import (
	"encoding/json"
	"fmt"

	"github.com/wdm0006/tablekit/pkg/config"
	"github.com/wdm0006/tablekit/pkg/io/csvio"
	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/io/jsonlio"
	"github.com/wdm0006/tablekit/pkg/io/parquetio"
	"github.com/wdm0006/tablekit/pkg/profile"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type source interface {
	tablekit.ChunkSource
	Headers() []tablekit.Header
	Close() error
}

func csvOptions(in config.Input) csvio.ReaderOptions {
	return csvio.ReaderOptions{
		HasHeader:  in.Header(),
		Delimiter:  config.Delimiter(in.Delimiter),
		SampleRows: in.SampleRows,
		DateFormat: in.DateFormat,
	}
}

func readTable(in config.Input) (*tablekit.Table, error) {
	switch typ := config.TypeOf(in.Type, in.Path); typ {
	case "csv":
		return csvio.ReadFile(in.Path, csvOptions(in))
	case "jsonl":
		return jsonlio.ReadFile(in.Path, jsonlio.ReaderOptions{SampleRows: in.SampleRows, DateFormat: in.DateFormat})
	case "parquet":
		return parquetio.ReadFile(in.Path, parquetio.ReaderOptions{SampleRows: in.SampleRows, DateFormat: in.DateFormat})
	default:
		return nil, fmt.Errorf("unsupported input type %q", typ)
	}
}

func openSource(in config.Input, chunkSize int) (source, error) {
	switch typ := config.TypeOf(in.Type, in.Path); typ {
	case "csv":
		return csvio.NewStreamReader(in.Path, csvOptions(in), chunkSize)
	case "jsonl":
		return jsonlio.NewStreamReader(in.Path, jsonlio.ReaderOptions{SampleRows: in.SampleRows, DateFormat: in.DateFormat}, chunkSize)
	case "parquet":
		return parquetio.NewStreamReader(in.Path, parquetio.ReaderOptions{SampleRows: in.SampleRows, DateFormat: in.DateFormat}, chunkSize)
	default:
		return nil, fmt.Errorf("unsupported input type %q", typ)
	}
}

func writeTable(out config.Output, t *tablekit.Table) error {
	switch typ := config.TypeOf(out.Type, out.Path); typ {
	case "csv":
		return csvio.WriteAll(out.Path, t, csvio.WriterOptions{Delimiter: config.Delimiter(out.Delimiter)})
	case "jsonl":
		return jsonlio.WriteAll(out.Path, t)
	case "parquet":
		if iox.IsStdio(out.Path) {
			return fmt.Errorf("parquet output needs a file path")
		}
		return parquetio.WriteAll(out.Path, t)
	default:
		return fmt.Errorf("unsupported output type %q", typ)
	}
}

func openSink(out config.Output) (tablekit.ChunkSink, error) {
	switch typ := config.TypeOf(out.Type, out.Path); typ {
	case "csv":
		return csvio.NewStreamWriter(out.Path, csvio.WriterOptions{Delimiter: config.Delimiter(out.Delimiter)})
	case "jsonl":
		return jsonlio.NewStreamWriter(out.Path)
	case "parquet":
		if iox.IsStdio(out.Path) {
			return nil, fmt.Errorf("parquet output needs a file path")
		}
		return parquetio.NewStreamWriter(out.Path)
	default:
		return nil, fmt.Errorf("unsupported output type %q for streaming", typ)
	}
}

// profiledSink feeds every chunk to a profile collector before writing it.
type profiledSink struct {
	tablekit.ChunkSink
	prof *profile.Collector
}

func (s profiledSink) Write(t *tablekit.Table) error {
	s.prof.Consume(t)
	return s.ChunkSink.Write(t)
}

func writeJSON(path string, v any) error {
	w, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
