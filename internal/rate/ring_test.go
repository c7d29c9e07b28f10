package rate

import (
	"reflect"
	"testing"
)

func TestRingWindowOrder(t *testing.T) {
	r := NewRing(4)
	for _, v := range []int{1, 2, 3} {
		r.Push(v)
	}
	if got := r.Window(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("unexpected window before wrap: %v", got)
	}
	r.Push(4)
	r.Push(5)
	if got := r.Window(); !reflect.DeepEqual(got, []int{2, 3, 4, 5}) {
		t.Fatalf("unexpected window after wrap: %v", got)
	}
	if r.Len() != 4 {
		t.Fatalf("expected len 4, got %d", r.Len())
	}
}

func TestRingMeanTruncates(t *testing.T) {
	r := NewRing(4)
	r.Push(1000)
	r.Push(500)
	r.Push(1000)
	if got := r.Mean(); got != 833 {
		t.Fatalf("expected truncated mean 833, got %d", got)
	}
}

func TestRingMeanEmpty(t *testing.T) {
	r := NewRing(4)
	if got := r.Mean(); got != 0 {
		t.Fatalf("expected 0 mean on empty ring, got %d", got)
	}
}

func TestRingMeanUsesCurrentWindow(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 4; i++ {
		r.Push(100)
	}
	// Overwrites the oldest 100; mean must follow the live window.
	r.Push(500)
	if got := r.Mean(); got != 200 {
		t.Fatalf("expected mean 200 over current window, got %d", got)
	}
}

func TestRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	if r.Cap() != WindowSize {
		t.Fatalf("expected default capacity %d, got %d", WindowSize, r.Cap())
	}
}
