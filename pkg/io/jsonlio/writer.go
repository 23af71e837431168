package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	iox "github.com/wdm0006/tablekit/pkg/io/ioutils"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// Write emits one object per row with keys in header order. Cells of number
// columns that are plain numerals are written as JSON numbers, empty cells as null.
func Write(w io.Writer, t *tablekit.Table) error {
	bw := bufio.NewWriter(w)
	keys := make([][]byte, len(t.Headers))
	for i, h := range t.Headers {
		b, err := json.Marshal(h.Name)
		if err != nil {
			return err
		}
		keys[i] = b
	}
	for _, row := range t.Rows {
		if err := writeRow(bw, t.Headers, keys, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, headers []tablekit.Header, keys [][]byte, row []string) error {
	_ = bw.WriteByte('{')
	for i, h := range headers {
		if i > 0 {
			_ = bw.WriteByte(',')
		}
		_, _ = bw.Write(keys[i])
		_ = bw.WriteByte(':')
		v, err := cellJSON(h, tablekit.Cell(row, i))
		if err != nil {
			return err
		}
		_, _ = bw.Write(v)
	}
	_ = bw.WriteByte('}')
	return bw.WriteByte('\n')
}

func cellJSON(h tablekit.Header, v string) ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	if h.IsNumber() {
		s := strings.TrimSpace(v)
		if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
			return []byte(s), nil
		}
	}
	return json.Marshal(v)
}

func WriteAll(path string, t *tablekit.Table) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, t); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
