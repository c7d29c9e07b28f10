//go:build linux || freebsd

package source

import (
	"reflect"
	"testing"
)

func TestSortEventPathsNumeric(t *testing.T) {
	paths := []string{
		"/dev/input/event10",
		"/dev/input/event2",
		"/dev/input/event0",
	}
	sortEventPaths(paths)
	want := []string{
		"/dev/input/event0",
		"/dev/input/event2",
		"/dev/input/event10",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("unexpected order: %v", paths)
	}
}

func TestEvioCGNameEncoding(t *testing.T) {
	// The request must carry the read direction, group 'E', number 0x06,
	// and the buffer size in the size field.
	req := uint32(evioCGName(128))
	if req&iocDirRead == 0 {
		t.Fatalf("missing read direction bits: %#x", req)
	}
	if (req>>8)&0xff != 'E' {
		t.Fatalf("unexpected ioctl group: %#x", req)
	}
	if req&0xff != 0x06 {
		t.Fatalf("unexpected ioctl number: %#x", req)
	}
	if (req>>16)&0x1fff != 128 {
		t.Fatalf("unexpected size field: %#x", req)
	}
}
