package kernel

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger used for kernel lifecycle and scheduling
// events, following the logiface + stumpy construction pattern from
// logiface-stumpy's own example_test.go.
type Logger = *logiface.Logger[*stumpy.Event]

// defaultLogger returns a configured-but-disabled logger: a Kernel that
// does not opt in via WithLogger pays no logging overhead, matching
// embedded-systems sensibility even on a host simulator.
func defaultLogger() Logger {
	return logiface.New[*stumpy.Event](
		stumpy.L.WithStumpy(),
		logiface.WithLevel[*stumpy.Event](logiface.LevelDisabled),
	)
}

// NewJSONLogger builds a Logger writing newline-delimited JSON, for callers
// that want kernel diagnostics without hand-rolling the logiface/stumpy
// wiring themselves.
func NewJSONLogger(level logiface.Level, opts ...stumpy.Option) Logger {
	return logiface.New[*stumpy.Event](
		stumpy.L.WithStumpy(opts...),
		logiface.WithLevel[*stumpy.Event](level),
	)
}
