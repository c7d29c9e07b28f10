package source

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/hid/IOHIDLib.h>

extern void evhzHIDValueCallback(void *context, IOReturn result, void *sender, IOHIDValueRef value);

static IOHIDManagerRef evhz_manager = NULL;

// evhzStartManager creates and opens an IOHIDManager matching every HID
// device, with the input-value callback scheduled on the current run loop.
// Returns 0 on success, -1 if creation failed, or the IOReturn from open.
int evhzStartManager(void) {
	evhz_manager = IOHIDManagerCreate(kCFAllocatorDefault, kIOHIDOptionsTypeNone);
	if (evhz_manager == NULL) {
		return -1;
	}
	IOHIDManagerSetDeviceMatching(evhz_manager, NULL);
	IOHIDManagerRegisterInputValueCallback(evhz_manager, evhzHIDValueCallback, NULL);
	IOHIDManagerScheduleWithRunLoop(evhz_manager, CFRunLoopGetCurrent(), kCFRunLoopDefaultMode);

	IOReturn ret = IOHIDManagerOpen(evhz_manager, kIOHIDOptionsTypeNone);
	if (ret != kIOReturnSuccess) {
		CFRelease(evhz_manager);
		evhz_manager = NULL;
		return (int)ret;
	}
	return 0;
}

void evhzStopManager(void) {
	if (evhz_manager != NULL) {
		IOHIDManagerClose(evhz_manager, kIOHIDOptionsTypeNone);
		CFRelease(evhz_manager);
		evhz_manager = NULL;
	}
}

uint32_t evhzValueUsagePage(IOHIDValueRef value) {
	return IOHIDElementGetUsagePage(IOHIDValueGetElement(value));
}

void evhzRunLoopSlice(double seconds) {
	CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/meizfl/evhz2/internal/model"
)

// HIDSource receives input-value callbacks from an IOHIDManager matched
// against all HID devices. The callback carries no per-device identity we
// can rely on across reconnects, so events are split into synthetic Mouse
// and Keyboard devices by usage page.
type HIDSource struct {
	epoch time.Time
	emit  func(Event) error
	err   error
}

// The input-value callback has no room for a Go pointer, so the active
// source is looked up through package state. One source streams at a time.
var (
	activeMu  sync.Mutex
	activeHID *HIDSource
)

// New creates the macOS HID source.
func New() (Source, error) {
	return &HIDSource{epoch: time.Now()}, nil
}

// Devices implements Source.
func (s *HIDSource) Devices() []model.DeviceInfo {
	return []model.DeviceInfo{
		{ID: "device0", Name: "Mouse"},
		{ID: "device1", Name: "Keyboard"},
	}
}

// Stream implements Source. The run loop is pumped in short slices so the
// context is checked promptly; callbacks fire on this goroutine during
// each slice, so event handling is serial.
func (s *HIDSource) Stream(ctx context.Context, emit func(Event) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	activeMu.Lock()
	if activeHID != nil {
		activeMu.Unlock()
		return errors.New("HID source already streaming")
	}
	s.emit = emit
	s.err = nil
	activeHID = s
	activeMu.Unlock()
	defer func() {
		activeMu.Lock()
		activeHID = nil
		activeMu.Unlock()
	}()

	if ret := int(C.evhzStartManager()); ret != 0 {
		if ret == -1 {
			return errors.New("create HID manager")
		}
		return fmt.Errorf("open HID manager: IOReturn %#x", ret)
	}
	defer C.evhzStopManager()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.err != nil {
			return s.err
		}
		C.evhzRunLoopSlice(0.1)
	}
}

// Close implements Source.
func (s *HIDSource) Close() error { return nil }

// handleValue classifies a callback by usage page and forwards it.
func (s *HIDSource) handleValue(usagePage uint32) {
	if s.err != nil {
		return
	}
	ev := Event{Time: uint64(time.Since(s.epoch).Microseconds())}
	switch usagePage {
	case uint32(C.kHIDPage_GenericDesktop):
		ev.Device, ev.Name, ev.Kind = "device0", "Mouse", KindMotion
	case uint32(C.kHIDPage_KeyboardOrKeypad):
		ev.Device, ev.Name, ev.Kind = "device1", "Keyboard", KindKey
	default:
		return
	}
	if err := s.emit(ev); err != nil {
		s.err = err
	}
}
