// Package batch interprets many verbatim dates in parallel and can rerun
// on a cron schedule.
package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"eventdate/internal/interpret"
	appLog "eventdate/internal/log"
	"eventdate/internal/model"
)

// maxLineBytes caps a single input line; verbatim dates are short, but
// exports sometimes carry whole remarks fields.
const maxLineBytes = 1 << 20

// Options control one batch run.
type Options struct {
	Interpret interpret.Options
	// DayPrecision widens every value to explicit day bounds.
	DayPrecision bool
	// Workers bounds concurrent interpretation; <= 0 means runtime.NumCPU.
	Workers int
}

// Summary counts results by state.
type Summary struct {
	Total   int
	Matched int
	ByState map[interpret.ResultState]int
}

// Scan reads one verbatim date per line. Blank lines are skipped but still
// counted, so Line matches the input file.
func Scan(r io.Reader) ([]model.Verbatim, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []model.Verbatim
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, model.Verbatim{Source: model.SourceLine, Line: line, Text: text})
	}
	if err := sc.Err(); err != nil {
		return out, errors.Wrapf(err, "batch: scan line %d", line+1)
	}
	return out, nil
}

// Interpret reads a single verbatim record.
func Interpret(v model.Verbatim, opts Options) model.Record {
	var res interpret.EventResult
	if opts.DayPrecision {
		res = interpret.InterpretToDayPrecisionWith(v.Text, opts.Interpret)
	} else {
		res = interpret.InterpretWith(v.Text, opts.Interpret)
	}
	return model.Record{Verbatim: v, Result: res}
}

// Normalize interprets every item on a bounded worker pool. Output order
// matches input order. It stops early only if ctx is cancelled.
func Normalize(ctx context.Context, items []model.Verbatim, opts Options) ([]model.Record, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	out := make([]model.Record, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Interpret(items[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "batch: normalize")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch: normalize")
	}

	s := Summarize(out)
	appLog.Info("batch normalized",
		"total", s.Total,
		"matched", s.Matched,
		"workers", workers,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return out, nil
}

// Summarize tallies records by result state.
func Summarize(records []model.Record) Summary {
	s := Summary{Total: len(records), ByState: make(map[interpret.ResultState]int)}
	for _, r := range records {
		s.ByState[r.Result.State]++
		if r.Matched() {
			s.Matched++
		}
	}
	return s
}
