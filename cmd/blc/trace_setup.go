package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blc/internal/trace"
)

// setupTracing reads --trace and --trace-level and attaches a tracer to the
// command context. closeTracing releases it after Execute returns.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: traceOutput})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "blc "+cmd.Name(), 0)
	ctx = trace.WithTracer(ctx, tracer)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	cmd.SetContext(ctx)
	root.SetContext(ctx)
	activeTrace = &traceState{tracer: tracer, span: span}
	return nil
}

type traceState struct {
	tracer trace.Tracer
	span   *trace.Span
}

var activeTrace *traceState

func closeTracing(cmd *cobra.Command) {
	st := activeTrace
	activeTrace = nil
	if st == nil {
		return
	}
	st.span.End("")
	if err := st.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := st.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
