package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jsonnetlex/internal/prof"
)

// setupProfiling starts the profilers requested by --cpu-profile,
// --mem-profile and --runtime-trace. The returned cleanup stops them.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()
	cpu, errCPU := pf.GetString("cpu-profile")
	mem, errMem := pf.GetString("mem-profile")
	rt, errRT := pf.GetString("runtime-trace")
	if err := errors.Join(errCPU, errMem, errRT); err != nil {
		return nil, fmt.Errorf("profiling flags: %w", err)
	}

	opts := prof.Options{CPU: cpu, Mem: mem, Trace: rt}
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	stderr := cmd.ErrOrStderr()
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(stderr, "profiling: %v\n", err)
		}
	}, nil
}
