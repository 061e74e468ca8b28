package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mapstyle/config"
	"github.com/jamesrr39/mapstyle/fonts"
	"github.com/jamesrr39/mapstyle/mapdata"
	"github.com/jamesrr39/mapstyle/palette"
	"github.com/jamesrr39/mapstyle/palette/presetfile"
	"github.com/jamesrr39/mapstyle/styling"
	"github.com/jamesrr39/mapstyle/swatchrenderer"
	"github.com/jamesrr39/mapstyle/webservices"
	"github.com/pkg/profile"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v2"
)

const (
	DEFAULT_PORT                  = 9000
	DEFAULT_MAX_CONCURRENT_BUILDS = 4
)

var (
	verbose = kingpin.Flag("v", "verbose logging").Bool()
	rootDir = kingpin.Flag("root-dir", "directory holding the presets, styles and trace directories").Default(config.DefaultRootDir).String()
)

func main() {
	setupServe()
	setupColorize()
	setupBreaks()

	kingpin.Parse()
}

func newLogger() *logpkg.Logger {
	logLevel := logpkg.LogLevelInfo
	if *verbose {
		logLevel = logpkg.LogLevelDebug
	}
	return logpkg.NewLogger(os.Stderr, logLevel)
}

func ensureDefaultPathsConfig(fs gofs.Fs) (*config.PathsConfig, errorsx.Error) {
	pathsConfig, err := config.NewPathsConfig(*rootDir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	err = pathsConfig.EnsurePaths(fs)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return pathsConfig, nil
}

// loadPresetRegistry returns the builtin presets plus the presets found in dir.
// Preset files that fail to load are logged and skipped.
func loadPresetRegistry(logger *logpkg.Logger, fs gofs.Fs, dir string) (*palette.PresetRegistry, errorsx.Error) {
	registry := palette.NewBuiltinPresetRegistry()

	presets, fileErrs, err := presetfile.LoadDir(fs, dir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	for _, fileErr := range fileErrs {
		logger.Warn("error loading presets from %q. Error: %q", fileErr.Path, fileErr.Err.Error())
	}

	err = presetfile.Register(registry, presets)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	logger.Debug("loaded %d presets from %q", len(presets), dir)

	return registry, nil
}

func loadStylesFromDir(logger *logpkg.Logger, fs gofs.Fs, dir, defaultStyleID string) (*styling.StyleSet, errorsx.Error) {
	fileStyles, fileErrs, err := styling.LoadStylesFromDir(fs, dir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	for path, fileErr := range fileErrs {
		logger.Warn("error loading style from %q. Error: %q", path, fileErr.Error())
	}

	styles := append([]styling.Style{&styling.CustomBasicStyle{}}, fileStyles...)

	sort.Slice(styles, func(a, b int) bool {
		return styles[a].GetStyleID() < styles[b].GetStyleID()
	})

	styleSet, err := styling.NewStyleSet(styles, defaultStyleID)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return styleSet, nil
}

var addrHelp = fmt.Sprintf(
	`address to serve on. Ex: ':%d' listen on port %d to traffic from anywhere. 'localhost:%d' listen on port %d to traffic from localhost`,
	DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT,
)

func setupServe() {
	cmd := kingpin.Command("serve", "serve the palette and style API")
	addr := cmd.Flag("addr", addrHelp).Default(fmt.Sprintf("localhost:%d", DEFAULT_PORT)).String()
	presetsDir := cmd.Flag("presets-dir", "directory of preset files (.yaml, .yml, .toml, .mss). Defaults to the presets directory under the root dir").String()
	stylesDir := cmd.Flag("styles-dir", "directory of style files (.yaml, .yml). Defaults to the styles directory under the root dir").String()
	defaultStyleID := cmd.Flag("default-style-id", "style to use when a request does not name one").Default(styling.BUILTIN_STYLEID).String()
	maxConcurrentBuilds := cmd.Flag("max-concurrent-builds", "maximum amount of palettes built at the same time").Default(fmt.Sprintf("%d", DEFAULT_MAX_CONCURRENT_BUILDS)).Uint()
	shouldProfile := cmd.Flag("profile", "write a CPU profile to the trace directory").Bool()
	shouldTrace := cmd.Flag("trace", "trace requests to a file in the trace directory").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger := newLogger()
			fs := gofs.NewOsFs()

			pathsConfig, err := ensureDefaultPathsConfig(fs)
			if err != nil {
				return errorsx.Wrap(err)
			}

			if *presetsDir == "" {
				*presetsDir = pathsConfig.PresetsDir
			}
			if *stylesDir == "" {
				*stylesDir = pathsConfig.StylesDir
			}

			if *shouldProfile {
				defer profile.Start(profile.ProfilePath(pathsConfig.TraceDir), profile.CPUProfile).Stop()
			}

			presets, err := loadPresetRegistry(logger, fs, *presetsDir)
			if err != nil {
				return errorsx.Wrap(err)
			}

			styleSet, err := loadStylesFromDir(logger, fs, *stylesDir, *defaultStyleID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			var tracer *tracing.Tracer
			if *shouldTrace {
				traceFilePath := filepath.Join(pathsConfig.TraceDir, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__03_04_05")))
				logger.Info("tracing at %q", traceFilePath)

				traceFile, osErr := fs.Create(traceFilePath)
				if osErr != nil {
					return errorsx.Wrap(osErr)
				}
				defer traceFile.Close()

				tracer = tracing.NewTracer(traceFile)
			}

			router, err := createServer(logger, presets, styleSet, tracer, *maxConcurrentBuilds)
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = *addr
			server.Handler = router

			logger.Info("about to start serving on %q", *addr)

			serveErr := server.ListenAndServe()
			if serveErr != nil {
				return errorsx.Wrap(serveErr)
			}
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func createServer(logger *logpkg.Logger, presets *palette.PresetRegistry, styleSet *styling.StyleSet, tracer *tracing.Tracer, maxConcurrentBuilds uint) (chi.Router, errorsx.Error) {
	font, err := fonts.DefaultFont()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	paletteService := webservices.NewPaletteService(logger, palette.NewFactory(presets), swatchrenderer.NewLegendRenderer(font), maxConcurrentBuilds)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	if tracer != nil {
		router.Use(tracing.Middleware(tracer))
	}
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, presets, styleSet))
		r.Mount("/palettes", paletteService)
		r.Mount("/styles", webservices.NewStyleService(logger, styleSet, paletteService))
	})

	return router, nil
}

func setupColorize() {
	cmd := kingpin.Command("colorize", "color the features of a GeoJSON feature collection by one of their properties, and write them with their resolved styles")
	inputPath := cmd.Arg("file", "GeoJSON feature collection to read ('-' for stdin)").Required().String()
	property := cmd.Flag("property", "feature property to color by").Required().String()
	definitionPath := cmd.Flag("definition", "YAML file describing the palette. Replaces the palette flags").String()
	kind := cmd.Flag("kind", "palette kind").Default(string(palette.KindNumeric)).Enum(
		string(palette.KindNumeric), string(palette.KindBin), string(palette.KindQuantile), string(palette.KindFactor))
	colors := cmd.Flag("colors", "comma separated list of colors").String()
	preset := cmd.Flag("preset", "name of a preset palette").String()
	bins := cmd.Flag("bins", "number of bins (bin and quantile palettes)").Int()
	breaks := cmd.Flag("break", "a bin break. Repeat for each break (bin palettes)").Strings()
	pretty := cmd.Flag("pretty", "round bin breaks to nice numbers").Bool()
	reverse := cmd.Flag("reverse", "reverse the colors").Bool()
	blend := cmd.Flag("blend", "color space to interpolate in (rgb, lab, hsluv)").Default("rgb").String()
	naColor := cmd.Flag("na-color", "color for values that cannot be mapped. By default such features keep their color").String()
	attribute := cmd.Flag("attribute", "style attribute to write the color to").Default(styling.DefaultColorAttribute).String()
	styleID := cmd.Flag("style-id", "style to take the default attributes from").Default(styling.BUILTIN_STYLEID).String()
	boundsStr := cmd.Flag("bounds", "only keep features within bounds. [W,N,E,S] Example: -1,1,1,-1").Default("").String()
	boundsMode := cmd.Flag("bounds-mode", "keep features overlapping the bounds, or only those totally inside").Default(string(mapdata.BoundsModeOverlap)).Enum(string(mapdata.BoundsModeOverlap), string(mapdata.BoundsModeInside))
	outputPath := cmd.Flag("output", "file to write to ('-' for stdout)").Default("-").String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger := newLogger()
			fs := gofs.NewOsFs()

			pathsConfig, err := ensureDefaultPathsConfig(fs)
			if err != nil {
				return errorsx.Wrap(err)
			}

			var definition palette.Definition
			if *definitionPath != "" {
				definition, err = readDefinition(fs, *definitionPath)
				if err != nil {
					return errorsx.Wrap(err)
				}
			} else {
				breakValues, err := parseFloats(*breaks)
				if err != nil {
					return errorsx.Wrap(err)
				}

				definition = palette.Definition{
					Kind:    palette.Kind(*kind),
					Colors:  splitList(*colors),
					Preset:  *preset,
					Bins:    *bins,
					Breaks:  breakValues,
					Pretty:  *pretty,
					Reverse: *reverse,
					Blend:   *blend,
					NAColor: *naColor,
				}
			}

			presets, err := loadPresetRegistry(logger, fs, pathsConfig.PresetsDir)
			if err != nil {
				return errorsx.Wrap(err)
			}

			styleSet, err := loadStylesFromDir(logger, fs, pathsConfig.StylesDir, styling.BUILTIN_STYLEID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			style, err := styleSet.GetStyle(*styleID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			fc, err := readFeatureCollection(fs, *inputPath)
			if err != nil {
				return errorsx.Wrap(err)
			}

			if *boundsStr != "" {
				bound, err := mapdata.ParseBound(*boundsStr)
				if err != nil {
					return errorsx.Wrap(err)
				}
				fc = mapdata.FilterInBounds(fc, bound, mapdata.BoundsMode(*boundsMode))
			}
			logger.Debug("coloring %d features by %q", len(fc.Features), *property)

			p, err := palette.NewFactory(presets).Build(definition, mapdata.PropertyValues(fc, *property))
			if err != nil {
				return errorsx.Wrap(err)
			}

			colorized, err := styling.Colorize(fc, p, *property, *attribute)
			if err != nil {
				return errorsx.Wrap(err)
			}

			return writeJSON(fs, *outputPath, styling.WithResolvedStyles(colorized, style.GetDefaults()))
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupBreaks() {
	cmd := kingpin.Command("breaks", "print the bins of a palette built from a numeric sample, with their colors")
	values := cmd.Arg("values", "the numeric sample").Required().Strings()
	kind := cmd.Flag("kind", "palette kind").Default(string(palette.KindBin)).Enum(string(palette.KindBin), string(palette.KindQuantile))
	bins := cmd.Flag("bins", "number of bins").Default("5").Int()
	pretty := cmd.Flag("pretty", "round bin breaks to nice numbers (bin palettes)").Bool()
	preset := cmd.Flag("preset", "name of a preset palette").Default("Blues").String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger := newLogger()
			fs := gofs.NewOsFs()

			sample, err := parseFloats(*values)
			if err != nil {
				return errorsx.Wrap(err)
			}

			pathsConfig, err := ensureDefaultPathsConfig(fs)
			if err != nil {
				return errorsx.Wrap(err)
			}

			presets, err := loadPresetRegistry(logger, fs, pathsConfig.PresetsDir)
			if err != nil {
				return errorsx.Wrap(err)
			}

			definition := palette.Definition{
				Kind:   palette.Kind(*kind),
				Preset: *preset,
				Bins:   *bins,
				Pretty: *pretty,
			}

			p, err := palette.NewFactory(presets).Build(definition, palette.Float64s(sample))
			if err != nil {
				return errorsx.Wrap(err)
			}

			legend, err := swatchrenderer.Legend(p)
			if err != nil {
				return errorsx.Wrap(err)
			}

			fmt.Print(legend)
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func readDefinition(fs gofs.Fs, path string) (palette.Definition, errorsx.Error) {
	var definition palette.Definition

	data, err := fs.ReadFile(path)
	if err != nil {
		return definition, errorsx.Wrap(err, "path", path)
	}

	err = yaml.UnmarshalStrict(data, &definition)
	if err != nil {
		return definition, errorsx.Wrap(err, "path", path)
	}

	return definition, nil
}

func readFeatureCollection(fs gofs.Fs, path string) (*mapdata.FeatureCollection, errorsx.Error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := fs.Open(path)
		if err != nil {
			return nil, errorsx.Wrap(err, "path", path)
		}
		defer file.Close()
		reader = file
	}

	fc := new(mapdata.FeatureCollection)
	err := json.NewDecoder(reader).Decode(fc)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	if fc.Type != mapdata.TypeFeatureCollection {
		return nil, errorsx.Errorf("expected a %s but got %q", mapdata.TypeFeatureCollection, fc.Type)
	}

	return fc, nil
}

func writeJSON(fs gofs.Fs, path string, v interface{}) errorsx.Error {
	var writer io.Writer = os.Stdout
	if path != "-" {
		file, err := fs.Create(path)
		if err != nil {
			return errorsx.Wrap(err, "path", path)
		}
		defer file.Close()
		writer = file
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "\t")
	err := encoder.Encode(v)
	if err != nil {
		return errorsx.Wrap(err)
	}

	return nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parseFloats(strs []string) ([]float64, errorsx.Error) {
	var floats []float64
	for _, s := range strs {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errorsx.Wrap(err, "value", s)
		}
		floats = append(floats, f)
	}
	return floats, nil
}
