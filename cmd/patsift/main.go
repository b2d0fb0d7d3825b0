package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patsift/patsift/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		jobPath string
		output  string
		tag     string
		chunk   int
		dryRun  bool
		verbose bool
	)

	flag.StringVar(&jobPath, "job", "", "Path to YAML job description")
	flag.StringVar(&output, "output", "", "Path to the output CSV (overrides job file)")
	flag.StringVar(&tag, "tag", "", "Designated record tag to extract (overrides job file)")
	flag.IntVar(&chunk, "chunk", 0, "Rows per committed chunk (0 means the default of 1000)")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse and count records without writing output")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var cfg app.Config
	if jobPath != "" {
		jf, err := app.LoadJobFile(jobPath)
		if err != nil {
			log.Error().Err(err).Msg("job file")
			os.Exit(1)
		}
		cfg = jf.Config()
	}
	// Flags override the job file.
	if output != "" {
		cfg.Output = output
	}
	if tag != "" {
		cfg.Tag = tag
	}
	if chunk > 0 {
		cfg.ChunkSize = chunk
	}
	if dryRun {
		cfg.DryRun = true
	}
	cfg.Verbose = verbose
	// Positional arguments are additional input files.
	cfg.Inputs = append(cfg.Inputs, flag.Args()...)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return a.Run(context.Background())
}
