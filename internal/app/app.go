package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/patsift/patsift/internal/patent"
	"github.com/patsift/patsift/internal/sgml"
	"github.com/patsift/patsift/internal/sink"
)

// ErrNoInputs is returned when a run is started without input files.
var ErrNoInputs = errors.New("no input files")

// transforms maps ColumnSpec.Transform names onto the pure helpers. The
// classifier results are rendered as their numeric codes.
var transforms = map[string]func(string) string{
	"patnum": patent.PruneNumber,
	"ipc":    patent.PadIPC,
	"org": func(s string) string {
		return strconv.Itoa(int(patent.OrgType(s)))
	},
	"convey": func(s string) string {
		return strconv.Itoa(int(patent.ConveyType(s)))
	},
}

// App wires one pump per input file into a single writer.
type App struct {
	cfg    Config
	schema sink.Schema
}

// New validates the configuration and resolves the output schema.
func New(cfg Config) (*App, error) {
	if cfg.Tag == "" {
		return nil, fmt.Errorf("designated tag is required")
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}
	if cfg.Output == "" && !cfg.DryRun {
		return nil, fmt.Errorf("output path is required unless dry-run")
	}
	schema := make(sink.Schema, len(cfg.Columns))
	for i, c := range cfg.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		t := sink.String
		switch c.Type {
		case "", "str":
		case "int":
			t = sink.Int
		default:
			return nil, fmt.Errorf("column %q: unsupported type %q", c.Name, c.Type)
		}
		if c.Transform != "" {
			if _, ok := transforms[c.Transform]; !ok {
				return nil, fmt.Errorf("column %q: unknown transform %q", c.Name, c.Transform)
			}
		}
		schema[i] = sink.Column{Name: c.Name, Type: t}
	}
	return &App{cfg: cfg, schema: schema}, nil
}

// Run pumps every input through the extraction transform into the writer and
// commits the trailing partial chunk. On a fault mid-run the partial output
// file is deleted rather than left half-written.
func (a *App) Run(ctx context.Context) error {
	if len(a.cfg.Inputs) == 0 {
		return ErrNoInputs
	}

	var w sink.Writer
	if a.cfg.DryRun {
		w = sink.NewDryWriter(a.cfg.ChunkSize, a.cfg.Verbose)
	} else {
		cw, err := sink.NewChunkWriter(a.cfg.Output, a.schema, a.cfg.ChunkSize, a.cfg.Verbose)
		if err != nil {
			return err
		}
		w = cw
	}

	for _, input := range a.cfg.Inputs {
		if err := a.pumpFile(ctx, input, w); err != nil {
			_ = w.Delete()
			return err
		}
	}
	if err := w.Commit(); err != nil {
		_ = w.Delete()
		return err
	}

	switch cw := w.(type) {
	case *sink.ChunkWriter:
		log.Info().
			Str("output", a.cfg.Output).
			Int64("rows", cw.Rows()).
			Int64("chunks", cw.Batches()).
			Msg("run complete")
	case *sink.DryWriter:
		log.Info().
			Int64("rows", cw.Rows()).
			Msg("dry run complete")
	}
	return w.Close()
}

func (a *App) pumpFile(ctx context.Context, path string, w sink.Writer) error {
	pump, err := sgml.Open(path, a.cfg.Tag, a.rowTransform())
	if err != nil {
		return err
	}
	defer pump.Close()

	n := 0
	for pump.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.Insert(pump.Record()...); err != nil {
			return err
		}
		n++
	}
	if err := pump.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if d := pump.DroppedBytes(); d > 0 {
		log.Warn().Str("file", path).Int64("bytes", d).Msg("dropped undecodable bytes")
	}
	log.Debug().Str("file", path).Int("records", n).Msg("parsed input")
	return nil
}

// rowTransform builds the Element -> row function from the column specs.
func (a *App) rowTransform() sgml.Transform[[]string] {
	cols := a.cfg.Columns
	return func(el *sgml.Element, source string) []string {
		row := make([]string, len(cols))
		for i, c := range cols {
			var v string
			switch c.Path {
			case "@file":
				v = source
			case "@text":
				v = el.RawText(" ")
			default:
				v = el.FindText(c.Path)
			}
			if fn := transforms[c.Transform]; fn != nil {
				v = fn(v)
			}
			row[i] = v
		}
		return row
	}
}
