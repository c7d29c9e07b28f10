// Package rate implements the per-device event rate estimator.
package rate

// Ring is a fixed-capacity buffer of Hz samples. Pushing past capacity
// overwrites the oldest entry. Not safe for concurrent use.
type Ring struct {
	buf  []int
	head int
	size int
}

// NewRing creates a ring with the given capacity. Capacities below 1
// default to WindowSize.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = WindowSize
	}
	return &Ring{buf: make([]int, capacity)}
}

// Push appends a sample, overwriting the oldest entry once full.
func (r *Ring) Push(v int) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// Len returns the number of live entries.
func (r *Ring) Len() int {
	return r.size
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Window returns the live entries in logical order, oldest first.
func (r *Ring) Window() []int {
	out := make([]int, r.size)
	start := (r.head - r.size + len(r.buf)) % len(r.buf)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Mean returns the truncating integer mean of the live entries, or 0 if
// the ring is empty.
func (r *Ring) Mean() int {
	if r.size == 0 {
		return 0
	}
	sum := 0
	start := (r.head - r.size + len(r.buf)) % len(r.buf)
	for i := 0; i < r.size; i++ {
		sum += r.buf[(start+i)%len(r.buf)]
	}
	return sum / r.size
}
