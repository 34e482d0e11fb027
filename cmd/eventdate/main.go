package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"eventdate/internal/batch"
	"eventdate/internal/config"
	appLog "eventdate/internal/log"
	"eventdate/internal/web"
)

// flagConfig holds CLI flag values; set ones override the config file.
type flagConfig struct {
	configPath   string
	file         string
	date         string
	unmatched    bool
	format       string
	workers      int
	threshold    int
	monthFirst   bool
	dayFirst     bool
	dayPrecision bool
	watch        string
	logLevel     string
	listen       string

	set map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	flags, err := parseFlags(args)
	if err != nil {
		return 1
	}
	conf := config.DefaultConfig()
	if flags.configPath != "" {
		if conf, err = config.Load(flags.configPath); err != nil {
			appLog.Error("failed to load config", err, "config_path", flags.configPath)
			return 1
		}
	}
	if err := flags.apply(conf); err != nil {
		appLog.Error("invalid flags", err)
		return 1
	}
	if level, err := appLog.ParseLevel(conf.LogLevel); err == nil {
		appLog.SetLevel(level)
	}
	if flags.file == "" && flags.date == "" && conf.Listen == "" {
		appLog.Error("nothing to read", errMissingInput, "hint", "pass -file <path|url|->, -date <text> or -listen <addr>")
		return 1
	}

	appLog.Debug("effective config",
		"suspect_year_threshold", conf.SuspectYearThreshold,
		"workers", conf.Workers,
		"output", conf.Output,
		"unmatched_only", conf.UnmatchedOnly,
		"watch", conf.Watch,
		"listen", conf.Listen,
		"day_precision", flags.dayPrecision,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	if conf.Listen != "" && flags.file == "" && flags.date == "" {
		if err := web.StartServer(ctx, conf); err != nil {
			appLog.Error("HTTP server failed", err)
			return 1
		}
		return 0
	}

	p := newPipeline(conf, flags, stdin, stdout)

	if conf.Watch != "" && flags.date == "" && flags.file != "-" {
		if err := batch.Watch(ctx, conf.Watch, p.runOnce); err != nil {
			appLog.Error("watch failed", err)
			return 1
		}
		return 0
	}

	if err := p.runOnce(ctx); err != nil {
		appLog.Error("run failed", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (flagConfig, error) {
	var cfg flagConfig

	fs := flag.NewFlagSet("eventdate", flag.ContinueOnError)
	fs.StringVar(&cfg.configPath, "config", "", "Path to YAML config file (written with defaults if missing)")
	fs.StringVar(&cfg.file, "file", "", "Input: text file with one date per line, .ics file, ICS feed URL, or - for stdin")
	fs.StringVar(&cfg.date, "date", "", "Interpret a single verbatim date")
	fs.BoolVar(&cfg.unmatched, "unmatched", false, "Print only the raw lines that produced no value")
	fs.StringVar(&cfg.format, "format", "", "Output format: text, json or ics")
	fs.IntVar(&cfg.workers, "workers", 0, "Parallel workers (default: number of CPUs)")
	fs.IntVar(&cfg.threshold, "threshold", 0, "Suspect year threshold (default 1000)")
	fs.BoolVar(&cfg.monthFirst, "month-first", false, "Read n/n/yyyy as month/day/year")
	fs.BoolVar(&cfg.dayFirst, "day-first", false, "Read n/n/yyyy as day/month/year")
	fs.BoolVar(&cfg.dayPrecision, "day-precision", false, "Widen every value to explicit day bounds")
	fs.StringVar(&cfg.watch, "watch", "", "Cron schedule for re-reading -file (e.g. \"*/15 * * * *\")")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.listen, "listen", "", "Serve the HTTP API on this address instead of reading input (e.g. 127.0.0.1:8080)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })
	return cfg, nil
}

// apply copies explicitly set flags over conf and re-validates it.
func (f flagConfig) apply(conf *config.Config) error {
	if f.monthFirst && f.dayFirst {
		return errConflictingOrder
	}
	if f.set["unmatched"] {
		conf.UnmatchedOnly = f.unmatched
	}
	if f.set["format"] {
		conf.Output = f.format
	}
	if f.set["workers"] {
		conf.Workers = f.workers
	}
	if f.set["threshold"] {
		conf.SuspectYearThreshold = f.threshold
	}
	if f.monthFirst || f.dayFirst {
		monthFirst := f.monthFirst
		conf.AssumeMonthFirst = &monthFirst
	}
	if f.set["watch"] {
		conf.Watch = f.watch
	}
	if f.set["log-level"] {
		conf.LogLevel = f.logLevel
	}
	if f.set["listen"] {
		conf.Listen = f.listen
	}
	return conf.Normalize()
}
