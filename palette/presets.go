package palette

import (
	"sort"
	"strings"
	"sync"

	ggpalette "github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	"github.com/jamesrr39/goutil/errorsx"
)

// PresetResolver resolves a preset name to the ColorSpec it stands for.
type PresetResolver interface {
	ResolvePreset(name string) (ColorSpec, bool)
}

type presetEntry struct {
	name string
	spec ColorSpec
}

// PresetRegistry is a PresetResolver backed by a map. Names are case-insensitive.
type PresetRegistry struct {
	mu      sync.RWMutex
	presets map[string]presetEntry
}

func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{presets: make(map[string]presetEntry)}
}

// NewBuiltinPresetRegistry creates a registry holding the ColorBrewer schemes, with their designs
// for each number of classes, and viridis.
func NewBuiltinPresetRegistry() *PresetRegistry {
	r := NewPresetRegistry()
	for name, scheme := range brewer.ByName {
		r.presets[strings.ToLower(name)] = presetEntry{name, Classes(scheme)}
	}
	r.presets["viridis"] = presetEntry{"viridis", FromContinuous(ggpalette.Viridis)}
	return r
}

// Register adds or replaces a preset.
func (r *PresetRegistry) Register(name string, spec ColorSpec) errorsx.Error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidSpecf("preset name must not be empty")
	}
	switch spec.kind {
	case specPreset:
		return invalidSpecf("preset %q cannot refer to another preset (%q)", name, spec.preset)
	case specUnset:
		return invalidSpecf("preset %q has an empty color spec", name)
	case specColors:
		if len(spec.tokens) == 0 {
			return invalidSpecf("preset %q has no colors", name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[strings.ToLower(name)] = presetEntry{name, spec}
	return nil
}

func (r *PresetRegistry) ResolvePreset(name string) (ColorSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.presets[strings.ToLower(strings.TrimSpace(name))]
	return entry.spec, ok
}

// Names returns the registered preset names, sorted case-insensitively
func (r *PresetRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, entry := range r.presets {
		names = append(names, entry.name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
