package jsonlio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

const sample = `{"cat":"A","amt":10,"when":"2024-01-15"}
{"cat":"B","amt":20.5,"when":"2024-02-01","flag":true}
{"amt":5,"cat":"A","when":null}
`

func TestReadAll(t *testing.T) {
	tbl, err := NewReaderFrom(strings.NewReader(sample), ReaderOptions{}).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.NumRows())
	}
	names := []string{}
	for _, h := range tbl.Headers {
		names = append(names, h.Name)
	}
	if strings.Join(names, ",") != "cat,amt,when,flag" {
		t.Fatalf("keys must keep first-appearance order, got %v", names)
	}
	if tbl.Headers[1].Type != tablekit.TypeNumber || tbl.Headers[2].Type != tablekit.TypeDate {
		t.Fatalf("unexpected types %+v", tbl.Headers)
	}
	if got := tbl.Rows[1]; got[1] != "20.5" || got[3] != "true" {
		t.Fatalf("unexpected row %q", got)
	}
	if got := tbl.Rows[2]; got[0] != "A" || got[2] != "" || got[3] != "" {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestRejectsNonObjects(t *testing.T) {
	if _, err := NewReaderFrom(strings.NewReader("[1,2]\n"), ReaderOptions{}).ReadAll(); err == nil {
		t.Fatal("expected an error for a non-object line")
	}
}

func TestWrite(t *testing.T) {
	tbl := tablekit.NewTable([]tablekit.Header{
		{ID: "c", Name: "Category"},
		{ID: "v", Name: "Sum of Amount", Type: tablekit.TypeNumber},
	}, [][]string{{"A", "15"}, {"B", ""}, {"C", "1,000"}})
	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	want := `{"Category":"A","Sum of Amount":15}
{"Category":"B","Sum of Amount":null}
{"Category":"C","Sum of Amount":"1,000"}
`
	if buf.String() != want {
		t.Fatalf("got:\n%s", buf.String())
	}
}

func TestStreamRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	if err := os.WriteFile(in, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	sr, err := NewStreamReader(in, ReaderOptions{SampleRows: 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sr.Close() }()
	out := filepath.Join(dir, "out.jsonl.gz")
	sw, err := NewStreamWriter(out)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for {
		tbl, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		total += tbl.NumRows()
		if err := sw.Write(tbl); err != nil {
			t.Fatal(err)
		}
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("expected 3 rows, got %d", total)
	}
	// only keys seen in the one-row sample survive
	back, err := ReadFile(out, ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if back.NumRows() != 3 || back.NumCols() != 3 || back.Rows[1][1] != "20.5" {
		t.Fatalf("unexpected round trip %+v", back)
	}
}
