package kernel

// Config holds kernel-wide configuration: task-count limits, tick cadence,
// which tick counters accumulate, the clock, and the logger. Build one via
// New with functional options, not by constructing Config directly.
type Config struct {
	maxTasks uint32

	msPerTick uint32

	countSeconds      bool
	countMilliseconds bool
	countMicroseconds bool

	clock Clock

	log Logger
}

// Option configures a Kernel at construction time.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		maxTasks:          0, // 0 means unlimited
		msPerTick:         2,
		countMilliseconds: true,
		clock:             RealClock{},
		log:               defaultLogger(),
	}
}

// WithMaxTasks bounds the number of tasks Create will allow. 0 (the
// default) means unlimited, matching a host simulator's lack of a fixed
// stack-slab arena to exhaust.
func WithMaxTasks(n uint32) Option {
	return func(c *Config) { c.maxTasks = n }
}

// WithMsPerTick sets the tick cadence in milliseconds. Default 2.
func WithMsPerTick(ms uint32) Option {
	return func(c *Config) {
		if ms == 0 {
			panic("nanokern: WithMsPerTick requires ms > 0")
		}
		c.msPerTick = ms
	}
}

// WithClock overrides the Clock driving the tick handler. Tests typically
// supply a ManualClock; production code can leave the default RealClock.
func WithClock(clock Clock) Option {
	return func(c *Config) { c.clock = clock }
}

// WithLogger overrides the structured logger used for kernel lifecycle and
// scheduling events. The zero value (no option given) logs nothing.
func WithLogger(log Logger) Option {
	return func(c *Config) { c.log = log }
}

// WithSecondCounter enables or disables the whole-second tick accumulator.
func WithSecondCounter(enabled bool) Option {
	return func(c *Config) { c.countSeconds = enabled }
}

// WithMillisecondCounter enables or disables the millisecond tick
// accumulator. Enabled by default.
func WithMillisecondCounter(enabled bool) Option {
	return func(c *Config) { c.countMilliseconds = enabled }
}

// WithMicrosecondCounter enables or disables the microsecond tick
// accumulator.
func WithMicrosecondCounter(enabled bool) Option {
	return func(c *Config) { c.countMicroseconds = enabled }
}
