//go:build linux || freebsd

package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/meizfl/evhz2/internal/model"
)

// inputEvent mirrors struct input_event. The timeval width follows the
// platform, so unsafe.Sizeof gives the right read size on 32- and 64-bit
// builds.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

const inputEventSize = int(unsafe.Sizeof(inputEvent{}))

// selectTimeout bounds each blocking wait so the context is checked
// promptly.
const selectTimeout = 250 * time.Millisecond

type evdevDevice struct {
	fd   int
	id   string
	name string
	path string
}

// EvdevSource multiplexes /dev/input/event* devices with select.
type EvdevSource struct {
	devices []evdevDevice
}

// New opens every readable /dev/input/event* node. Devices that cannot be
// opened are skipped; ErrNoDevices is returned when none open.
func New() (Source, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("scan /dev/input: %w", err)
	}
	sortEventPaths(paths)

	src := &EvdevSource{}
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			continue
		}
		src.devices = append(src.devices, evdevDevice{
			fd:   fd,
			id:   filepath.Base(path),
			name: deviceName(fd),
			path: path,
		})
	}
	if len(src.devices) == 0 {
		return nil, ErrNoDevices
	}
	return src, nil
}

// Devices implements Source.
func (s *EvdevSource) Devices() []model.DeviceInfo {
	infos := make([]model.DeviceInfo, len(s.devices))
	for i, d := range s.devices {
		infos[i] = model.DeviceInfo{ID: d.id, Name: d.name, Path: d.path}
	}
	return infos
}

// Stream implements Source. Events carry the kernel-reported timestamp
// converted to microseconds. Malformed reads are dropped silently.
func (s *EvdevSource) Stream(ctx context.Context, emit func(Event) error) error {
	buf := make([]byte, inputEventSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var set unix.FdSet
		set.Zero()
		nfds := 0
		for _, d := range s.devices {
			set.Set(d.fd)
			if d.fd >= nfds {
				nfds = d.fd + 1
			}
		}

		tv := unix.NsecToTimeval(selectTimeout.Nanoseconds())
		n, err := unix.Select(nfds, &set, nil, nil, &tv)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("select input devices: %w", err)
		}
		if n == 0 {
			continue
		}

		for _, d := range s.devices {
			if !set.IsSet(d.fd) {
				continue
			}
			nr, err := unix.Read(d.fd, buf)
			if err != nil || nr != inputEventSize {
				continue
			}
			ev := *(*inputEvent)(unsafe.Pointer(&buf[0]))
			kind, ok := Classify(ev.Type, ev.Code, ev.Value)
			if !ok {
				continue
			}
			ts := uint64(ev.Time.Sec)*1_000_000 + uint64(ev.Time.Usec)
			if err := emit(Event{Device: d.id, Name: d.name, Time: ts, Kind: kind}); err != nil {
				return err
			}
		}
	}
}

// Close implements Source.
func (s *EvdevSource) Close() error {
	var first error
	for _, d := range s.devices {
		if err := unix.Close(d.fd); err != nil && first == nil {
			first = err
		}
	}
	s.devices = nil
	return first
}

// evioCGName encodes EVIOCGNAME(size): a read ioctl in group 'E',
// number 0x06. The direction bits come from the per-OS iocDirRead.
func evioCGName(size uint32) uintptr {
	return uintptr(iocDirRead | size<<16 | 'E'<<8 | 0x06)
}

// deviceName reads the device name via EVIOCGNAME, falling back to a
// placeholder when the ioctl fails.
func deviceName(fd int) string {
	var buf [128]byte
	req := evioCGName(uint32(len(buf)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "Unknown"
	}
	name := string(buf[:])
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

// sortEventPaths orders event nodes numerically so event2 comes before
// event10.
func sortEventPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return eventIndex(paths[i]) < eventIndex(paths[j])
	})
}

func eventIndex(path string) int {
	suffix := strings.TrimPrefix(filepath.Base(path), "event")
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
