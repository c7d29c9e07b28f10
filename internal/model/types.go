// Package model defines shared data structures.
package model

// Config defines monitor settings.
type Config struct {
	Nonverbose bool
	Live       bool
}

// DeviceInfo identifies a discovered input device.
type DeviceInfo struct {
	ID   string
	Name string
	Path string
}

// Sample is one accepted rate measurement for a device.
type Sample struct {
	Device  string
	Name    string
	Hz      int
	Average int
}

// Summary reports a device's final state at shutdown.
type Summary struct {
	Name    string
	Average int
	Count   uint64
}
