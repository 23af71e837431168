package parquetio

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// numericColumns marks number columns whose non-empty cells all parse as
// floats; only those are stored as DOUBLE.
func numericColumns(t *tablekit.Table) []bool {
	out := make([]bool, len(t.Headers))
	for c, h := range t.Headers {
		if !h.IsNumber() {
			continue
		}
		out[c] = true
		for _, row := range t.Rows {
			v := strings.TrimSpace(tablekit.Cell(row, c))
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				out[c] = false
				break
			}
		}
	}
	return out
}

func fieldName(name string) string {
	// tags are comma/equals separated
	return strings.NewReplacer(",", "_", "=", "_").Replace(name)
}

// fieldNames sanitizes header names and de-duplicates the results.
func fieldNames(headers []tablekit.Header) []string {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = fieldName(h.Name)
	}
	return tablekit.Uniquify(names)
}

func parquetSchemaJSON(names []string, numeric []bool) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for i, name := range names {
		tag := "name=" + name + ", repetitiontype=OPTIONAL, type="
		if numeric[i] {
			tag += "DOUBLE"
		} else {
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

type tableWriter struct {
	fw      source.ParquetFile
	w       *pw.JSONWriter
	names   []string
	numeric []bool
	rows    int
}

func newTableWriter(path string, t *tablekit.Table) (*tableWriter, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, err
	}
	numeric := numericColumns(t)
	names := fieldNames(t.Headers)
	w, err := pw.NewJSONWriter(parquetSchemaJSON(names, numeric), fw, 4)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("parquet writer init: %w", err)
	}
	return &tableWriter{fw: fw, w: w, names: names, numeric: numeric}, nil
}

func (tw *tableWriter) write(t *tablekit.Table) error {
	for _, row := range t.Rows {
		rec := make(map[string]any, len(tw.names))
		for c, name := range tw.names {
			v := strings.TrimSpace(tablekit.Cell(row, c))
			if v == "" {
				continue
			}
			if tw.numeric[c] {
				x, err := strconv.ParseFloat(v, 64)
				if err != nil {
					var ok bool
					if x, ok = parse.NumberStrict(v); !ok {
						return fmt.Errorf("parquet column %q row %d: %q is not a number and the column is stored as DOUBLE", name, tw.rows+1, v)
					}
				}
				rec[name] = x
				continue
			}
			rec[name] = tablekit.Cell(row, c)
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := tw.w.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
		tw.rows++
	}
	return nil
}

func (tw *tableWriter) close() error {
	if err := tw.w.WriteStop(); err != nil {
		_ = tw.fw.Close()
		return fmt.Errorf("parquet write stop: %w", err)
	}
	return tw.fw.Close()
}

// WriteAll writes t to a Parquet file.
func WriteAll(path string, t *tablekit.Table) error {
	tw, err := newTableWriter(path, t)
	if err != nil {
		return err
	}
	if err := tw.write(t); err != nil {
		_ = tw.close()
		return err
	}
	return tw.close()
}
