//go:build !linux && !freebsd && !windows && !darwin

package source

// New reports that the platform has no event source.
func New() (Source, error) {
	return nil, ErrUnsupportedPlatform
}
