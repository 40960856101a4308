package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/config"
	"github.com/kihuha/flighter/internal/emit"
	"github.com/kihuha/flighter/internal/logging"
	"github.com/kihuha/flighter/internal/pipeline"
	"github.com/kihuha/flighter/internal/report"
	"github.com/kihuha/flighter/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(logging.Init(cfg.AppEnv, cfg.LogLevel))
	defer logging.Close()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	runID := uuid.NewString()
	log := logging.WithRun(runID)

	cmd := os.Args[1]
	switch cmd {
	case "generate-seeds":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input-csv", cfg.InputCSV, "curated flight dataset (.csv or .xlsx)")
		output := fs.String("output-sql", cfg.OutputSQL, "seed bundle output path")
		schedules := fs.String("schedules-sql", cfg.SchedulesSQL, "optional schedule SQL appended to the bundle")
		skipSchedules := fs.Bool("skip-schedules", cfg.SkipSchedules, "do not append schedule SQL")
		batch := fs.Int("batch-size", cfg.SQLBatchSize, "rows per INSERT statement")
		_ = fs.Parse(os.Args[2:])
		requireFlags(cfg, map[string]string{"--input-csv": *input, "--output-sql": *output})

		frames, err := buildFrames(log, *input)
		must(err)

		opts := emit.Options{BatchSize: *batch}
		if !*skipSchedules {
			opts.SchedulesSQL, err = emit.LoadOptionalSchedulesSQL(*schedules)
			must(err)
			if opts.SchedulesSQL == nil {
				log.Infow("no schedule sql appended", "path", *schedules)
			}
		}

		must(emit.WriteSeedSQL(*output, emit.RenderSeedSQL(frames, opts)))
		log.Infow("seed bundle written", "path", *output)
		report.RenderCounts(os.Stdout, frames.Counts())
		fmt.Printf("wrote %s\n", *output)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input-csv", cfg.InputCSV, "curated flight dataset (.csv or .xlsx)")
		out := fs.String("out", cfg.XLSXPath, "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		requireFlags(cfg, map[string]string{"--input-csv": *input, "--out": *out})

		frames, err := buildFrames(log, *input)
		must(err)
		must(pipeline.ExportSeedFramesToXLSX(frames, *out))
		log.Infow("workbook written", "path", *out)
		report.RenderCounts(os.Stdout, frames.Counts())
		fmt.Printf("wrote %s\n", *out)
	case "export:sqlite":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input-csv", cfg.InputCSV, "curated flight dataset (.csv or .xlsx)")
		out := fs.String("out", cfg.SQLitePath, "output sqlite path")
		_ = fs.Parse(os.Args[2:])
		requireFlags(cfg, map[string]string{"--input-csv": *input, "--out": *out})

		frames, err := buildFrames(log, *input)
		must(err)
		counts, err := writeSQLite(*out, runID, *input, frames)
		must(err)
		log.Infow("sqlite written", "path", *out)
		report.RenderCounts(os.Stdout, counts)
		fmt.Printf("wrote %s\n", *out)
	case "inspect":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input-csv", cfg.InputCSV, "curated flight dataset (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		requireFlags(cfg, map[string]string{"--input-csv": *input})

		frames, err := buildFrames(log, *input)
		must(err)
		report.RenderCounts(os.Stdout, frames.Counts())
	default:
		usage()
		os.Exit(1)
	}
}

func buildFrames(log *zap.SugaredLogger, input string) (internal.SeedFrames, error) {
	started := time.Now()
	rows, err := pipeline.LoadFlightData(input)
	if err != nil {
		return internal.SeedFrames{}, fmt.Errorf("load flight data: %w", err)
	}
	log.Infow("flight data loaded", "path", input, "rows", len(rows))

	frames, err := pipeline.BuildSeedFrames(rows)
	if err != nil {
		return internal.SeedFrames{}, fmt.Errorf("build seed frames: %w", err)
	}
	log.Infow("seed frames built", "routes", len(frames.Routes), "elapsed", time.Since(started).String())
	return frames, nil
}

func writeSQLite(path, runID, input string, frames internal.SeedFrames) ([]internal.TableCount, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if err := db.WriteSeedFrames(frames); err != nil {
		return nil, fmt.Errorf("write seed frames: %w", err)
	}
	counts, err := db.Counts()
	if err != nil {
		return nil, err
	}
	if err := db.InsertRun(runID, input, counts); err != nil {
		return nil, err
	}
	if err := db.SetMetadata("seed.input_path", input); err != nil {
		return nil, err
	}
	if err := db.SetMetadata("seed.generated_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return counts, nil
}

func requireFlags(cfg config.Config, flags map[string]string) {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		must(cfg.Require(name, flags[name]))
	}
}

func usage() {
	fmt.Println("usage: flightseed <command>")
	fmt.Println("commands:")
	fmt.Println("  generate-seeds [--input-csv=...] [--output-sql=...] [--schedules-sql=...] [--skip-schedules] [--batch-size=500]")
	fmt.Println("  export:xlsx [--input-csv=...] [--out=./out/seed.xlsx]")
	fmt.Println("  export:sqlite [--input-csv=...] [--out=./out/seed.db]")
	fmt.Println("  inspect [--input-csv=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
