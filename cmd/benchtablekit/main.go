package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/wdm0006/tablekit/pkg/logger"
	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/filter"
	"github.com/wdm0006/tablekit/pkg/transform/order"
	"github.com/wdm0006/tablekit/pkg/transform/pivot"
)

type options struct {
	Rows       int     `long:"rows" description:"total rows to generate" default:"1000000"`
	Chunk      int     `long:"chunk" description:"rows per chunk for the streaming filter pass" default:"100000"`
	Categories int     `long:"categories" description:"distinct pivot row keys" default:"50"`
	Regions    int     `long:"regions" description:"distinct pivot column keys" default:"8"`
	Missing    float64 `long:"missing" description:"probability of an empty amount cell" default:"0.05"`
	JSON       bool    `long:"json" description:"emit JSON summary"`
	Seed       int64   `long:"seed" description:"random seed" default:"42"`
}

var headers = []tablekit.Header{
	{ID: "cat", Name: "Category", Type: tablekit.TypeText},
	{ID: "reg", Name: "Region", Type: tablekit.TypeText},
	{ID: "amt", Name: "Amount", Type: tablekit.TypeNumber},
	{ID: "day", Name: "Day", Type: tablekit.TypeDate},
}

type genSource struct {
	opt    options
	remain int
	rnd    *rand.Rand
}

func (g *genSource) Next() (*tablekit.Table, error) {
	if g.remain <= 0 {
		return nil, io.EOF
	}
	n := min(g.opt.Chunk, g.remain)
	g.remain -= n
	rows := make([][]string, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range rows {
		amt := ""
		if g.rnd.Float64() >= g.opt.Missing {
			amt = strconv.FormatFloat(g.rnd.Float64()*1000, 'f', 2, 64)
		}
		rows[i] = []string{
			"c" + strconv.Itoa(g.rnd.Intn(g.opt.Categories)),
			"r" + strconv.Itoa(g.rnd.Intn(g.opt.Regions)),
			amt,
			base.AddDate(0, 0, g.rnd.Intn(365)).Format("2006-01-02"),
		}
	}
	return tablekit.NewTable(headers, rows), nil
}

// collectSink keeps the filtered rows for the whole-table steps.
type collectSink struct{ rows [][]string }

func (c *collectSink) Write(t *tablekit.Table) error { c.rows = append(c.rows, t.Rows...); return nil }
func (c *collectSink) Close() error                  { return nil }

func main() {
	var opt options
	if _, err := flags.Parse(&opt); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	ctx := context.Background()
	log := logger.Discard()

	stream := tablekit.NewPipeline().WithLogger(log).Add(&filter.Filter{Columns: []filter.Column{
		{ColumnID: "amt", Conditions: []filter.Condition{filter.Cond(filter.IsNotEmpty)}},
		{ColumnID: "day", Conditions: []filter.Condition{filter.Range(filter.Between, "2024-02-01", "2024-11-30")}},
	}})
	batch := tablekit.NewPipeline().WithLogger(log).
		Add(&order.Sort{Levels: []order.Level{{ColumnID: "cat"}, {ColumnID: "amt", Direction: order.Desc}}}).
		Add(&pivot.Pivot{Spec: pivot.Spec{
			Rows:    []tablekit.Dimension{{ID: "cat"}},
			Columns: []tablekit.Dimension{{ID: "reg"}},
			Values: []pivot.Value{
				{ID: "sum", ColumnID: "amt", AggregationType: tablekit.AggSum},
				{ID: "n", AggregationType: tablekit.AggCount},
			},
		}})

	src := &genSource{opt: opt, remain: opt.Rows, rnd: rand.New(rand.NewSource(opt.Seed))}
	sink := &collectSink{}

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	if err := tablekit.RunStream(ctx, stream, src, sink); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	filtered := time.Since(start)
	out, err := batch.Run(ctx, tablekit.NewTable(headers, sink.rows))
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(opt.Rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  opt.Rows,
		"kept_rows":             len(sink.rows),
		"pivot_rows":            out.NumRows(),
		"pivot_cols":            out.NumCols(),
		"filter_ms":             filtered.Milliseconds(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"chunk":                 opt.Chunk,
	}
	if opt.JSON {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d (kept %d)\n", opt.Rows, len(sink.rows))
	fmt.Printf("Pivot: %d x %d\n", out.NumRows(), out.NumCols())
	fmt.Printf("Filter: %s\n", filtered)
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
