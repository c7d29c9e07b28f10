package rate

const (
	// WindowSize is the number of samples kept for the running average.
	WindowSize = 64

	// Scale is the number of clock units per second. Timestamps are in
	// microseconds.
	Scale = 1_000_000

	// MaxPlausibleHz rejects rates implied by spurious near-zero deltas.
	// No real input device reports at 10 kHz or above.
	MaxPlausibleHz = 10_000
)

// Sample is the result of an accepted update.
type Sample struct {
	Hz      int
	Average int
}

// Estimator tracks the event rate of a single device. Updates must come
// from a single goroutine in timestamp order.
type Estimator struct {
	name    string
	history *Ring
	count   uint64
	average int
	prev    uint64
	primed  bool
}

// NewEstimator creates an estimator for the named device.
func NewEstimator(name string) *Estimator {
	return &Estimator{
		name:    name,
		history: NewRing(WindowSize),
	}
}

// Name returns the device display name.
func (e *Estimator) Name() string {
	return e.name
}

// Average returns the current running average in Hz.
func (e *Estimator) Average() int {
	return e.average
}

// Count returns the number of accepted samples.
func (e *Estimator) Count() uint64 {
	return e.count
}

// Update records an event timestamp in microseconds and reports the
// instantaneous and average rate when the sample is accepted.
//
// The first call only establishes the baseline. A zero delta yields an
// instantaneous rate of 0 and is rejected; rates at or above
// MaxPlausibleHz are rejected as well. The previous timestamp advances
// on every call regardless of acceptance.
func (e *Estimator) Update(ts uint64) (Sample, bool) {
	if !e.primed {
		e.prev = ts
		e.primed = true
		return Sample{}, false
	}

	delta := ts - e.prev
	hz := 0
	if delta != 0 {
		hz = int(Scale / delta)
	}
	e.prev = ts

	if hz <= 0 || hz >= MaxPlausibleHz {
		return Sample{}, false
	}

	e.count++
	e.history.Push(hz)
	e.average = e.history.Mean()
	return Sample{Hz: hz, Average: e.average}, true
}
