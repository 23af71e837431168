package impute

import (
	"context"
	"strconv"
	"testing"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

func BenchmarkMedian(b *testing.B) {
	rows := make([][]string, 100000)
	for i := range rows {
		v := ""
		if i%10 != 0 {
			v = strconv.Itoa(i)
		}
		rows[i] = []string{v}
	}
	in := tablekit.NewTable([]tablekit.Header{{ID: "x", Type: tablekit.TypeNumber}}, rows)
	tf := &Median{Column: "x"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tf.Apply(context.Background(), in); err != nil {
			b.Fatal(err)
		}
	}
}
