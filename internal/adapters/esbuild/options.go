package esbuild

import (
	"encoding/json"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildOptions translates a build configuration into esbuild options.
// workDir must be absolute; entry and output paths are resolved against it.
func buildOptions(cfg domain.BuildConfig, workDir string) (api.BuildOptions, error) {
	platform, err := platformFor(cfg.Target)
	if err != nil {
		return api.BuildOptions{}, err
	}

	format, err := formatFor(cfg.Output.Library.Type)
	if err != nil {
		return api.BuildOptions{}, err
	}

	entry := absPath(workDir, cfg.Entry)
	outDir := absPath(workDir, cfg.Output.Path)

	opts := api.BuildOptions{
		AbsWorkingDir: workDir,
		EntryPoints:   []string{entry},
		Outfile:       filepath.Join(outDir, cfg.Output.Filename),
		Bundle:        true,
		Write:         false,
		Metafile:      true,
		LogLevel:      api.LogLevelSilent,
		Platform:      platform,
		Format:        format,
		Define:        defines(cfg, entry, outDir),
	}

	switch cfg.Mode {
	case domain.ModeProduction:
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
		opts.TreeShaking = api.TreeShakingTrue
	case domain.ModeDevelopment:
		opts.KeepNames = true
	}

	return opts, nil
}

func platformFor(target domain.Target) (api.Platform, error) {
	switch target {
	case domain.TargetNode:
		return api.PlatformNode, nil
	case domain.TargetWeb, domain.TargetWebWorker:
		return api.PlatformBrowser, nil
	default:
		return api.PlatformDefault, zerr.With(
			zerr.Wrap(domain.ErrUnsupportedTarget, "no platform for target"), "target", string(target))
	}
}

func formatFor(library domain.LibraryType) (api.Format, error) {
	switch library {
	case domain.LibraryCommonJSModule, domain.LibraryCommonJS:
		return api.FormatCommonJS, nil
	case domain.LibraryModule:
		return api.FormatESModule, nil
	default:
		return api.FormatDefault, zerr.With(
			zerr.Wrap(domain.ErrUnsupportedLibraryType, "no output format for library type"), "library", string(library))
	}
}

// defines returns the compile-time substitutions for the configuration.
// Node globals are only stubbed for non-Node targets; a Node runtime provides them itself.
func defines(cfg domain.BuildConfig, entry, outDir string) map[string]string {
	d := map[string]string{
		"process.env.NODE_ENV": jsonString(string(cfg.Mode)),
	}

	if cfg.Target == domain.TargetNode {
		return d
	}

	if cfg.Node.Global {
		d["global"] = "globalThis"
	}

	rel, err := filepath.Rel(outDir, entry)
	if err != nil {
		rel = filepath.Base(entry)
	}
	rel = filepath.ToSlash(rel)

	if cfg.Node.Filename {
		d["__filename"] = jsonString(rel)
	}
	if cfg.Node.Dirname {
		d["__dirname"] = jsonString(filepath.ToSlash(filepath.Dir(rel)))
	}

	return d
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func jsonString(s string) string {
	data, _ := json.Marshal(s) //nolint:errchkjson // strings always marshal
	return string(data)
}
