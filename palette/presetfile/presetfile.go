// Package presetfile loads named color palettes from files.
//
// Supported formats, chosen by file extension:
//
//	.yaml, .yml   name: ["#aaa", "#bbb"]
//	.toml         name = ["#aaa", "#bbb"]
//	.mss          @name: #aaa, #bbb;
package presetfile

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/jamesrr39/mapstyle/styling/cartocss"
	"gopkg.in/yaml.v2"
)

type Preset struct {
	Name   string
	Colors []string
	// Source is the path of the file the preset was loaded from
	Source string
}

// IsPresetFile reports whether the file extension is one of the supported formats
func IsPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".mss":
		return true
	default:
		return false
	}
}

// LoadFile reads the presets in a single file. Every color is checked to be a valid color token.
func LoadFile(fs gofs.Fs, path string) ([]*Preset, errorsx.Error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	presets, parseErr := parse(filepath.Ext(path), data)
	if parseErr != nil {
		return nil, errorsx.Wrap(parseErr, "path", path)
	}

	for _, preset := range presets {
		preset.Source = path
		if len(preset.Colors) == 0 {
			return nil, errorsx.Errorf("preset %q in %q has no colors", preset.Name, path)
		}
		for _, c := range preset.Colors {
			_, err := palette.NormalizeColor(c, true)
			if err != nil {
				return nil, errorsx.Wrap(err, "path", path, "preset", preset.Name)
			}
		}
	}

	return presets, nil
}

// FileError is a file that could not be loaded by LoadDir
type FileError struct {
	Path string
	Err  errorsx.Error
}

// LoadDir reads every preset file directly inside dir, in file name order.
// Files that fail to load are returned in fileErrs and do not stop the others from loading.
func LoadDir(fs gofs.Fs, dir string) (presets []*Preset, fileErrs []FileError, err errorsx.Error) {
	fileInfos, readErr := fs.ReadDir(dir)
	if readErr != nil {
		return nil, nil, errorsx.Wrap(readErr, "dir", dir)
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].Name() < fileInfos[j].Name()
	})

	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !IsPresetFile(fileInfo.Name()) {
			continue
		}

		path := filepath.Join(dir, fileInfo.Name())
		filePresets, loadErr := LoadFile(fs, path)
		if loadErr != nil {
			fileErrs = append(fileErrs, FileError{path, loadErr})
			continue
		}

		presets = append(presets, filePresets...)
	}

	return presets, fileErrs, nil
}

// Register adds the presets to a registry. Later presets replace earlier ones with the same name.
func Register(registry *palette.PresetRegistry, presets []*Preset) errorsx.Error {
	for _, preset := range presets {
		err := registry.Register(preset.Name, palette.Colors(preset.Colors...))
		if err != nil {
			return errorsx.Wrap(err, "path", preset.Source)
		}
	}
	return nil
}

func parse(ext string, data []byte) ([]*Preset, errorsx.Error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var m map[string][]string
		err := yaml.UnmarshalStrict(data, &m)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		return fromMap(m), nil
	case ".toml":
		var m map[string][]string
		_, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		return fromMap(m), nil
	case ".mss":
		sheet, err := cartocss.Parse(string(data))
		if err != nil {
			return nil, err
		}
		var presets []*Preset
		for _, name := range sheet.Names() {
			colors, err := sheet.List(name)
			if err != nil {
				return nil, err
			}
			presets = append(presets, &Preset{Name: name, Colors: colors})
		}
		return presets, nil
	default:
		return nil, errorsx.Errorf("unsupported preset file type: %q", ext)
	}
}

func fromMap(m map[string][]string) []*Preset {
	var names []string
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	presets := make([]*Preset, len(names))
	for i, name := range names {
		presets[i] = &Preset{Name: name, Colors: m[name]}
	}
	return presets
}
