package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wdm0006/tablekit/pkg/config"
	"github.com/wdm0006/tablekit/pkg/logger"
	"github.com/wdm0006/tablekit/pkg/profile"
	"github.com/wdm0006/tablekit/pkg/series"
	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/pivot"
)

var version = "0.1.0-dev"

const profileTopK = 5

func main() {
	opt, err := parseCLI(os.Args[1:])
	if err != nil {
		if isHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if opt.Version {
		fmt.Println("tablekit", version)
		return
	}
	logger.Level.SetByName(opt.LogLevel)

	if opt.Config == "" {
		logger.Error("no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}
	cfg, err := config.Load(opt.Config)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	if err := run(context.Background(), cfg, opt, logger.Default()); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opt *Option, log *logger.Logger) error {
	p, spec, err := cfg.Build(log)
	if err != nil {
		return err
	}
	if opt.ChunkSize > 0 {
		if p.Streamable() {
			return runStream(ctx, cfg, opt, p, spec, log)
		}
		log.Warningf("pipeline has steps that need the whole table; ignoring --chunk-size %d", opt.ChunkSize)
	}

	in, err := readTable(cfg.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input.Path, err)
	}
	log.Debugf("read %d rows x %d cols from %s", in.NumRows(), in.NumCols(), cfg.Input.Path)
	out, err := p.Run(ctx, in)
	if err != nil {
		return err
	}
	if err := writeTable(cfg.Output, out); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Path, err)
	}
	log.Infof("wrote %d rows x %d cols", out.NumRows(), out.NumCols())
	if opt.Profile {
		prof := profile.NewCollector(out.Headers, profileTopK)
		prof.Consume(out)
		fmt.Fprint(os.Stderr, prof.ReportText())
	}
	return writeChart(cfg.Chart, out.Headers, spec, log)
}

func runStream(ctx context.Context, cfg *config.Config, opt *Option, p *tablekit.Pipeline, spec *pivot.Spec, log *logger.Logger) error {
	src, err := openSource(cfg.Input, opt.ChunkSize)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input.Path, err)
	}
	defer func() { _ = src.Close() }()
	sink, err := openSink(cfg.Output)
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Path, err)
	}
	var prof *profile.Collector
	if opt.Profile {
		prof = profile.NewCollector(src.Headers(), profileTopK)
		sink = profiledSink{ChunkSink: sink, prof: prof}
	}
	if err := tablekit.RunStream(ctx, p, src, sink); err != nil {
		if errors.Is(err, tablekit.ErrNotStreamable) {
			return fmt.Errorf("streaming: %w", err)
		}
		return err
	}
	log.Infof("streamed %s in chunks of %d rows", cfg.Input.Path, opt.ChunkSize)
	if prof != nil {
		fmt.Fprint(os.Stderr, prof.ReportText())
	}
	// row-local steps keep the input headers
	return writeChart(cfg.Chart, src.Headers(), spec, log)
}

func writeChart(chart *config.Chart, headers []tablekit.Header, spec *pivot.Spec, log *logger.Logger) error {
	if chart == nil {
		return nil
	}
	b := series.Detect(headers, chart.Type, chart.Series, spec)
	if b == nil {
		log.Warningf("no columns could be bound to a %s chart", chart.Type)
		return nil
	}
	if b.Skipped > 0 {
		log.Warningf("%d columns left out of the %s chart (max %d series)", b.Skipped, chart.Type, series.MaxSeries)
	}
	return writeJSON(chart.Output, b)
}
