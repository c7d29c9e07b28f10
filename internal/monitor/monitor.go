// Package monitor dispatches source events to per-device rate estimators
// and reports the results.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meizfl/evhz2/internal/model"
	"github.com/meizfl/evhz2/internal/rate"
	"github.com/meizfl/evhz2/internal/source"
)

// Options controls monitor behaviour.
type Options struct {
	// Verbose enables the per-sample line on Out.
	Verbose bool
	// Out receives verbose output. Defaults to os.Stdout.
	Out io.Writer
	// OnSample, when set, observes every accepted sample.
	OnSample func(model.Sample)
}

// Monitor owns one estimator per device and applies events in arrival
// order. Events must come from a single Stream call; estimators are
// created on a device's first event.
type Monitor struct {
	verbose    bool
	out        io.Writer
	onSample   func(model.Sample)
	estimators map[string]*rate.Estimator
	order      []string
}

// New constructs a monitor.
func New(opts Options) *Monitor {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Monitor{
		verbose:    opts.Verbose,
		out:        out,
		onSample:   opts.OnSample,
		estimators: make(map[string]*rate.Estimator),
	}
}

// Run drives the source until cancellation. Cancellation is the normal
// way to stop and is not reported as an error.
func (m *Monitor) Run(ctx context.Context, src source.Source) error {
	err := src.Stream(ctx, m.handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (m *Monitor) handle(ev source.Event) error {
	est, ok := m.estimators[ev.Device]
	if !ok {
		est = rate.NewEstimator(ev.Name)
		m.estimators[ev.Device] = est
		m.order = append(m.order, ev.Device)
	}

	s, accepted := est.Update(ev.Time)
	if !accepted {
		return nil
	}

	if m.verbose {
		if _, err := fmt.Fprintf(m.out, "%s: Latest %5dHz, Average %5dHz\n", est.Name(), s.Hz, s.Average); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	if m.onSample != nil {
		m.onSample(model.Sample{
			Device:  ev.Device,
			Name:    est.Name(),
			Hz:      s.Hz,
			Average: s.Average,
		})
	}
	return nil
}

// Summaries returns the final state of every device in first-seen order.
func (m *Monitor) Summaries() []model.Summary {
	out := make([]model.Summary, 0, len(m.order))
	for _, id := range m.order {
		est := m.estimators[id]
		out = append(out, model.Summary{
			Name:    est.Name(),
			Average: est.Average(),
			Count:   est.Count(),
		})
	}
	return out
}
