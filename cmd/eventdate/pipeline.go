package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"eventdate/internal/batch"
	"eventdate/internal/config"
	"eventdate/internal/ics"
	"eventdate/internal/model"
)

var (
	errMissingInput     = errors.New("no input: need -file, -date or -listen")
	errConflictingOrder = errors.New("-month-first and -day-first are mutually exclusive")
)

// pipeline is one read, interpret, write cycle. Watch mode reruns it.
type pipeline struct {
	conf    *config.Config
	flags   flagConfig
	stdin   io.Reader
	stdout  io.Writer
	fetcher *ics.Fetcher
}

func newPipeline(conf *config.Config, flags flagConfig, stdin io.Reader, stdout io.Writer) *pipeline {
	return &pipeline{
		conf:    conf,
		flags:   flags,
		stdin:   stdin,
		stdout:  stdout,
		fetcher: ics.NewFetcher(nil),
	}
}

func (p *pipeline) runOnce(ctx context.Context) error {
	items, err := p.read(ctx)
	if err != nil {
		return err
	}
	records, err := batch.Normalize(ctx, items, batch.Options{
		Interpret:    p.conf.Options(),
		DayPrecision: p.flags.dayPrecision,
		Workers:      p.conf.Workers,
	})
	if err != nil {
		return err
	}
	return p.write(records)
}

func (p *pipeline) read(ctx context.Context) ([]model.Verbatim, error) {
	if p.flags.date != "" {
		return []model.Verbatim{{Source: model.SourceInline, Line: 1, Text: p.flags.date}}, nil
	}

	src := p.flags.file
	switch {
	case src == "-":
		return batch.Scan(p.stdin)
	case ics.IsURL(src):
		body, err := p.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return ics.ReadEventDates(bytes.NewReader(body))
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(src), ".ics") {
		return ics.ReadEventDates(f)
	}
	return batch.Scan(f)
}

func (p *pipeline) write(records []model.Record) error {
	if p.conf.UnmatchedOnly {
		unmatched := records[:0:0]
		for _, r := range records {
			if !r.Matched() {
				unmatched = append(unmatched, r)
			}
		}
		records = unmatched
	}

	switch p.conf.Output {
	case config.OutputICS:
		return ics.Export(p.stdout, records, time.Now())
	case config.OutputJSON:
		enc := json.NewEncoder(p.stdout)
		enc.SetEscapeHTML(false)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return errors.Wrap(err, "encode record")
			}
		}
		return nil
	default:
		w := bufio.NewWriter(p.stdout)
		for _, r := range records {
			if p.conf.UnmatchedOnly {
				fmt.Fprintln(w, r.Text)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Text, r.Result.State, r.Result.Value)
		}
		return errors.Wrap(w.Flush(), "write output")
	}
}
