// Package source provides platform event sources for input devices.
//
// A source enumerates input devices, classifies raw hardware events, and
// forwards only qualifying ones (motion or key transitions) with
// microsecond timestamps that are non-decreasing per device.
package source

import (
	"context"
	"errors"

	"github.com/meizfl/evhz2/internal/model"
)

// ErrNoDevices is returned when no input device could be opened.
var ErrNoDevices = errors.New("no input devices found")

// ErrUnsupportedPlatform is returned on platforms without an event source.
var ErrUnsupportedPlatform = errors.New("no event source for this platform")

// Kind classifies a qualifying event.
type Kind int

const (
	// KindMotion is a relative or absolute movement event.
	KindMotion Kind = iota
	// KindKey is a key press or release edge.
	KindKey
)

// Event is one qualifying input event.
type Event struct {
	// Device is a stable identifier for the run's duration.
	Device string
	// Name is the device display name.
	Name string
	// Time is the event timestamp in microseconds.
	Time uint64
	Kind Kind
}

// Source emits qualifying input events for discovered devices.
type Source interface {
	// Devices lists the devices the source monitors, in discovery order.
	Devices() []model.DeviceInfo
	// Stream delivers events to emit until the context is cancelled or
	// emit returns an error.
	Stream(ctx context.Context, emit func(Event) error) error
	// Close releases any devices held by the source.
	Close() error
}

// SourceFunc adapts a function literal to the Source interface. It reports
// no devices and has no resources to release.
type SourceFunc func(ctx context.Context, emit func(Event) error) error

// Devices implements Source.
func (f SourceFunc) Devices() []model.DeviceInfo { return nil }

// Stream calls the underlying function.
func (f SourceFunc) Stream(ctx context.Context, emit func(Event) error) error {
	return f(ctx, emit)
}

// Close implements Source.
func (f SourceFunc) Close() error { return nil }
