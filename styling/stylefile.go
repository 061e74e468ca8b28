package styling

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"gopkg.in/yaml.v2"
)

// FileStyle is a style read from a YAML file:
//
//	id: night
//	defaults:
//	  color: "#FFFFFF"
//	  weight: 2
type FileStyle struct {
	ID       string                 `yaml:"id"`
	Defaults map[string]interface{} `yaml:"defaults"`
}

func (s *FileStyle) GetStyleID() string {
	return s.ID
}

func (s *FileStyle) GetDefaults() StyleLayer {
	defaults := make(StyleLayer, len(s.Defaults))
	for k, v := range s.Defaults {
		defaults[k] = v
	}
	return defaults
}

func ParseStyle(data []byte) (*FileStyle, errorsx.Error) {
	style := new(FileStyle)
	err := yaml.UnmarshalStrict(data, style)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	if strings.TrimSpace(style.ID) == "" {
		return nil, errorsx.Errorf("style has no id")
	}

	if style.ID == BUILTIN_STYLEID {
		return nil, errorsx.Errorf("style id %q is reserved", BUILTIN_STYLEID)
	}

	for k, v := range style.Defaults {
		style.Defaults[k] = normalizeYAMLValue(v)
	}

	return style, nil
}

// normalizeYAMLValue turns the map[interface{}]interface{} values yaml produces for nested objects
// into map[string]interface{}, as they would be if decoded from JSON.
func normalizeYAMLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAMLValue(item)
		}
		return m
	case []interface{}:
		items := make([]interface{}, len(val))
		for i, item := range val {
			items[i] = normalizeYAMLValue(item)
		}
		return items
	default:
		return v
	}
}

// LoadStylesFromDir reads every .yaml/.yml file in dir as a style.
// Files that fail to load are returned in fileErrs and skipped.
func LoadStylesFromDir(fs gofs.Fs, dir string) (styles []Style, fileErrs map[string]errorsx.Error, err errorsx.Error) {
	fileInfos, readErr := fs.ReadDir(dir)
	if readErr != nil {
		return nil, nil, errorsx.Wrap(readErr, "dir", dir)
	}

	fileErrs = make(map[string]errorsx.Error)
	for _, fileInfo := range fileInfos {
		ext := strings.ToLower(filepath.Ext(fileInfo.Name()))
		if fileInfo.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, fileInfo.Name())
		data, readErr := fs.ReadFile(path)
		if readErr != nil {
			fileErrs[path] = errorsx.Wrap(readErr)
			continue
		}

		style, parseErr := ParseStyle(data)
		if parseErr != nil {
			fileErrs[path] = errorsx.Wrap(parseErr, "path", path)
			continue
		}

		styles = append(styles, style)
	}

	return styles, fileErrs, nil
}
