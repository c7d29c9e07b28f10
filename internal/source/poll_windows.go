package source

import (
	"context"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/meizfl/evhz2/internal/model"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

type point struct {
	X int32
	Y int32
}

// pollInterval bounds how often the cursor and key state are sampled.
const pollInterval = time.Millisecond

// PollSource samples the cursor position and key state, synthesizing one
// mouse and one keyboard device. Windows offers no per-device event nodes
// without raw-input window plumbing, so the two synthetic devices stand in
// for whatever hardware drives them.
type PollSource struct {
	epoch time.Time
}

// New creates the Windows polling source.
func New() (Source, error) {
	return &PollSource{epoch: time.Now()}, nil
}

// Devices implements Source.
func (s *PollSource) Devices() []model.DeviceInfo {
	return []model.DeviceInfo{
		{ID: "device0", Name: "Mouse"},
		{ID: "device1", Name: "Keyboard"},
	}
}

// Stream implements Source. Cursor movement qualifies as motion; key state
// edges (down transitions and releases) qualify as key events.
func (s *PollSource) Stream(ctx context.Context, emit func(Event) error) error {
	var lastPos point
	var havePos bool
	var keyState [256]bool

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		var pos point
		ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pos)))
		if ret != 0 {
			if !havePos {
				lastPos = pos
				havePos = true
			} else if pos.X != lastPos.X || pos.Y != lastPos.Y {
				ev := Event{Device: "device0", Name: "Mouse", Time: s.now(), Kind: KindMotion}
				if err := emit(ev); err != nil {
					return err
				}
				lastPos = pos
			}
		}

		for vk := 1; vk < len(keyState); vk++ {
			state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
			down := uint16(state)&0x8000 != 0
			if down != keyState[vk] {
				ev := Event{Device: "device1", Name: "Keyboard", Time: s.now(), Kind: KindKey}
				if err := emit(ev); err != nil {
					return err
				}
			}
			keyState[vk] = down
		}
	}
}

// Close implements Source.
func (s *PollSource) Close() error { return nil }

// now returns monotonic microseconds since the source was created.
func (s *PollSource) now() uint64 {
	return uint64(time.Since(s.epoch).Microseconds())
}
