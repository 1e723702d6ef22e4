package styles

import (
	"sort"

	"github.com/matzehuels/pebblecal/pkg/errors"
)

var registry = map[string]Style{
	Simple{}.Name(): Simple{},
	Sketch{}.Name(): Sketch{},
}

// Lookup returns the named style.
func Lookup(name string) (Style, error) {
	s, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %s", name)
	}
	return s, nil
}

// Names lists the registered style names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
