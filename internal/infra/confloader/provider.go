package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned by ReadBytes on an override provider.
var ErrReadBytesNotSupported = errors.New("confloader: overrides have no byte form")

// overrideProvider feeds a map of dotted keys ("server.http.addr") into
// koanf. Nested maps are accepted as well.
type overrideProvider map[string]any

// ReadBytes is unsupported; koanf calls Read for this provider.
func (m overrideProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the overrides as a nested map.
func (m overrideProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
