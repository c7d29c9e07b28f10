package monitor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/meizfl/evhz2/internal/model"
	"github.com/meizfl/evhz2/internal/source"
)

func scriptedSource(events []source.Event) source.Source {
	return source.SourceFunc(func(ctx context.Context, emit func(source.Event) error) error {
		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(ev); err != nil {
				return err
			}
		}
		return context.Canceled
	})
}

func TestRunVerboseOutput(t *testing.T) {
	events := []source.Event{
		{Device: "event0", Name: "Test Mouse", Time: 0, Kind: source.KindMotion},
		{Device: "event0", Name: "Test Mouse", Time: 1000, Kind: source.KindMotion},
		{Device: "event0", Name: "Test Mouse", Time: 2000, Kind: source.KindMotion},
	}

	var out bytes.Buffer
	m := New(Options{Verbose: true, Out: &out})
	if err := m.Run(context.Background(), scriptedSource(events)); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 verbose lines, got %d: %q", len(lines), out.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "Test Mouse: Latest  1000Hz, Average  1000Hz") {
			t.Fatalf("unexpected verbose line: %q", line)
		}
	}
}

func TestRunNonverboseSilent(t *testing.T) {
	events := []source.Event{
		{Device: "event0", Name: "Test Mouse", Time: 0, Kind: source.KindMotion},
		{Device: "event0", Name: "Test Mouse", Time: 1000, Kind: source.KindMotion},
	}

	var out bytes.Buffer
	m := New(Options{Verbose: false, Out: &out})
	if err := m.Run(context.Background(), scriptedSource(events)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output in nonverbose mode, got %q", out.String())
	}
}

func TestRunSeparatesDevices(t *testing.T) {
	// Interleaved devices at different rates must not share state.
	events := []source.Event{
		{Device: "event0", Name: "Mouse", Time: 0, Kind: source.KindMotion},
		{Device: "event1", Name: "Keyboard", Time: 0, Kind: source.KindKey},
		{Device: "event0", Name: "Mouse", Time: 1000, Kind: source.KindMotion},
		{Device: "event1", Name: "Keyboard", Time: 100000, Kind: source.KindKey},
		{Device: "event0", Name: "Mouse", Time: 2000, Kind: source.KindMotion},
		{Device: "event1", Name: "Keyboard", Time: 200000, Kind: source.KindKey},
	}

	m := New(Options{Out: &bytes.Buffer{}})
	if err := m.Run(context.Background(), scriptedSource(events)); err != nil {
		t.Fatalf("run: %v", err)
	}

	summaries := m.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "Mouse" || summaries[0].Average != 1000 {
		t.Fatalf("unexpected mouse summary: %+v", summaries[0])
	}
	if summaries[1].Name != "Keyboard" || summaries[1].Average != 10 {
		t.Fatalf("unexpected keyboard summary: %+v", summaries[1])
	}
}

func TestRunOnSampleHook(t *testing.T) {
	events := []source.Event{
		{Device: "event0", Name: "Mouse", Time: 0, Kind: source.KindMotion},
		{Device: "event0", Name: "Mouse", Time: 2000, Kind: source.KindMotion},
	}

	var samples []model.Sample
	m := New(Options{
		Out:      &bytes.Buffer{},
		OnSample: func(s model.Sample) { samples = append(samples, s) },
	})
	if err := m.Run(context.Background(), scriptedSource(events)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Hz != 500 || samples[0].Average != 500 || samples[0].Device != "event0" {
		t.Fatalf("unexpected sample: %+v", samples[0])
	}
}

func TestRunCancellationIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := New(Options{Out: &bytes.Buffer{}})
	src := source.SourceFunc(func(ctx context.Context, emit func(source.Event) error) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := m.Run(ctx, src); err != nil {
		t.Fatalf("expected nil error on cancellation, got %v", err)
	}
}
