package hightime

// Time is the minimal API of a point in time T whose differences are
// measured in D. Arithmetic reports range errors instead of wrapping.
// Instant implements Time[Instant, Duration].
type Time[T, D any] interface {
	Add(D) (T, error)
	Sub(T) (D, error)

	// Comparisons
	After(T) bool
	Before(T) bool
	Equal(T) bool
	IsZero() bool
}

// Clock is a generic API for a clock that marks Times of type T.
type Clock[T Time[T, D], D any] interface {
	// Generate `Time`s
	Now() T

	// Generate `Duration`s
	ParseDuration(string) (D, error)
	Since(T) (D, error)
	Until(T) (D, error)

	// Program flow control
	Sleep(D)

	// Generate `Ticker`s
	NewTicker(D) Ticker[T, D]
	Tick(D) <-chan T

	// Generate `Timer`s
	NewTimer(D) Timer[T, D]
	After(D) <-chan T
	AfterFunc(D, func()) Timer[T, D]
}

// A Ticker holds a channel that delivers “ticks” of a clock at intervals.
type Ticker[T, D any] interface {
	C() <-chan T
	Reset(D)
	Stop()
}

// A Timer delivers a single tick after a delay.
type Timer[T, D any] interface {
	C() <-chan T
	Reset(D) bool
	Stop() bool
}

var _ Time[Instant, Duration] = Instant{}
