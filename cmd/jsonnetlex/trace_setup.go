package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jsonnetlex/internal/trace"
)

// traceConfig parses the --trace-* persistent flags into a trace.Config.
func traceConfig(pf *pflag.FlagSet) (trace.Config, error) {
	var (
		cfg  trace.Config
		errs []error
	)
	get := func(name string) string {
		v, err := pf.GetString(name)
		errs = append(errs, err)
		return v
	}

	cfg.OutputPath = get("trace")
	level, err := trace.ParseLevel(get("trace-level"))
	errs = append(errs, err)
	cfg.Format, err = trace.ParseFormat(get("trace-format"))
	errs = append(errs, err)
	cfg.Mode, err = trace.ParseMode(get("trace-mode"))
	errs = append(errs, err)
	cfg.RingSize, err = pf.GetInt("trace-ring-size")
	errs = append(errs, err)
	cfg.Heartbeat, err = pf.GetDuration("trace-heartbeat")
	errs = append(errs, err)

	// --trace без уровня включает phase
	if level == trace.LevelOff && cfg.OutputPath != "" && !pf.Changed("trace-level") {
		level = trace.LevelPhase
	}
	cfg.Level = level
	return cfg, errors.Join(errs...)
}

// setupTracing installs the tracer into the command context and returns
// the cleanup that stops the heartbeat, dumps the ring and closes output.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("trace flags: %w", err)
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, err
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	if !tracer.Enabled() {
		return func() {}, nil
	}

	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat)
	stderr := cmd.ErrOrStderr()
	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(stderr, "trace: %s error: %v\n", what, err)
		}
	}

	return func() {
		heartbeat.Stop()
		// В ring режиме события копятся в памяти: выгружаем их в конце
		if ring := trace.RingOf(tracer); ring != nil && cfg.Mode == trace.ModeRing {
			format := cfg.Format
			if format == trace.FormatAuto {
				format = trace.FormatText
			}
			report("dump", dumpRing(ring, cfg.OutputPath, format))
		}
		report("flush", tracer.Flush())
		report("close", tracer.Close())
	}, nil
}

func dumpRing(ring *trace.RingTracer, path string, format trace.Format) error {
	if path == "" || path == "-" {
		return ring.Dump(os.Stderr, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(ring.Dump(f, format), f.Close())
}
