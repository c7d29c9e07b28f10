package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meizfl/evhz2/internal/model"
)

func TestViewWaitingState(t *testing.T) {
	m := NewModel(nil)
	out := m.View()
	if !strings.Contains(out, "Waiting for input events") {
		t.Fatalf("expected waiting notice, got %q", out)
	}
}

func TestUpdateSampleRendersDevice(t *testing.T) {
	m := NewModel(nil)
	next, _ := m.Update(SampleMsg(model.Sample{Device: "event0", Name: "Test Mouse", Hz: 998, Average: 1000}))
	out := next.View()
	if !strings.Contains(out, "Test Mouse") {
		t.Fatalf("expected device name in view: %q", out)
	}
	if !strings.Contains(out, "998Hz") || !strings.Contains(out, "1000Hz") {
		t.Fatalf("expected rates in view: %q", out)
	}
}

func TestUpdateQuitCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewModel(cancel)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected context to be cancelled on quit")
	}
}
