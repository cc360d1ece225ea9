package scene

import (
	"fmt"
	"sort"
)

// builtin maps scene names to their constructors
var builtin = map[string]struct {
	build       func(width, height int) *Scene
	description string
}{
	"default": {NewDefaultScene, "three spheres on a ground plane under a sky gradient"},
	"cornell": {NewCornellScene, "Cornell box with a glass and a metal sphere"},
	"furnace": {NewFurnaceScene, "white sphere in a uniform emissive enclosure"},
}

// FromName builds one of the built-in scenes by name. The returned scene
// is already prepared.
func FromName(name string, width, height int) (*Scene, error) {
	entry, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("scene %q is not defined (available: %v)", name, Names())
	}

	s := entry.build(width, height)
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	return s, nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of a built-in scene
func Describe(name string) string {
	return builtin[name].description
}
