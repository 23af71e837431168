package csvio

import (
	"strconv"
	"strings"
	"testing"
)

func BenchmarkReadAll(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("id,category,amount,date\n")
	for i := 0; i < 10000; i++ {
		sb.WriteString(strconv.Itoa(i) + ",c" + strconv.Itoa(i%7) + "," + strconv.Itoa(i%100) + ".5,2024-01-02\n")
	}
	data := sb.String()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tbl, err := NewReaderFrom(strings.NewReader(data), ReaderOptions{HasHeader: true}).ReadAll()
		if err != nil {
			b.Fatal(err)
		}
		if tbl.NumRows() == 0 {
			b.Fatal("no rows")
		}
	}
}
