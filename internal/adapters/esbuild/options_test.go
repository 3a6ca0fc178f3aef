package esbuild

import (
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/core/domain"
)

func testConfig(root string) domain.BuildConfig {
	return domain.BuildConfig{
		Mode:   domain.ModeDevelopment,
		Entry:  filepath.Join(root, "lib", "js", "src", "Handler.js"),
		Target: domain.TargetNode,
		Output: domain.Output{
			Filename: "dist.js",
			Path:     root,
			Library:  domain.Library{Type: domain.LibraryCommonJSModule},
		},
		Stats: domain.Stats{ErrorDetails: true},
	}
}

func TestBuildOptions_Development(t *testing.T) {
	root := t.TempDir()
	opts, err := buildOptions(testConfig(root), root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "lib", "js", "src", "Handler.js")}, opts.EntryPoints)
	assert.Equal(t, filepath.Join(root, "dist.js"), opts.Outfile)
	assert.Equal(t, api.PlatformNode, opts.Platform)
	assert.Equal(t, api.FormatCommonJS, opts.Format)
	assert.True(t, opts.Bundle)
	assert.True(t, opts.Metafile)
	assert.True(t, opts.KeepNames)
	assert.False(t, opts.MinifyWhitespace)
	assert.False(t, opts.MinifyIdentifiers)
	assert.False(t, opts.MinifySyntax)
	assert.Equal(t, map[string]string{"process.env.NODE_ENV": `"development"`}, opts.Define)
}

func TestBuildOptions_Production(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Mode = domain.ModeProduction

	opts, err := buildOptions(cfg, root)
	require.NoError(t, err)

	assert.True(t, opts.MinifyWhitespace)
	assert.True(t, opts.MinifyIdentifiers)
	assert.True(t, opts.MinifySyntax)
	assert.Equal(t, api.TreeShakingTrue, opts.TreeShaking)
	assert.Equal(t, `"production"`, opts.Define["process.env.NODE_ENV"])
}

func TestBuildOptions_Targets(t *testing.T) {
	tests := []struct {
		target domain.Target
		want   api.Platform
	}{
		{domain.TargetNode, api.PlatformNode},
		{domain.TargetWeb, api.PlatformBrowser},
		{domain.TargetWebWorker, api.PlatformBrowser},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			root := t.TempDir()
			cfg := testConfig(root)
			cfg.Target = tt.target

			opts, err := buildOptions(cfg, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Platform)
		})
	}
}

func TestBuildOptions_LibraryTypes(t *testing.T) {
	tests := []struct {
		library domain.LibraryType
		want    api.Format
	}{
		{domain.LibraryCommonJSModule, api.FormatCommonJS},
		{domain.LibraryCommonJS, api.FormatCommonJS},
		{domain.LibraryModule, api.FormatESModule},
	}

	for _, tt := range tests {
		t.Run(string(tt.library), func(t *testing.T) {
			root := t.TempDir()
			cfg := testConfig(root)
			cfg.Output.Library.Type = tt.library

			opts, err := buildOptions(cfg, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Format)
		})
	}
}

func TestBuildOptions_UMDRejected(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Output.Library.Type = domain.LibraryUMD

	_, err := buildOptions(cfg, root)
	require.ErrorIs(t, err, domain.ErrUnsupportedLibraryType)
}

func TestBuildOptions_UnknownTarget(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Target = "electron"

	_, err := buildOptions(cfg, root)
	require.ErrorIs(t, err, domain.ErrUnsupportedTarget)
}

func TestBuildOptions_NodeEmulationIgnoredForNode(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Node = domain.NodeEmulation{Global: true, Filename: true, Dirname: true}

	opts, err := buildOptions(cfg, root)
	require.NoError(t, err)

	assert.NotContains(t, opts.Define, "global")
	assert.NotContains(t, opts.Define, "__filename")
	assert.NotContains(t, opts.Define, "__dirname")
}

func TestBuildOptions_NodeEmulationForWeb(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Target = domain.TargetWeb
	cfg.Node = domain.NodeEmulation{Global: true, Filename: true, Dirname: true}

	opts, err := buildOptions(cfg, root)
	require.NoError(t, err)

	assert.Equal(t, "globalThis", opts.Define["global"])
	assert.Equal(t, `"lib/js/src/Handler.js"`, opts.Define["__filename"])
	assert.Equal(t, `"lib/js/src"`, opts.Define["__dirname"])
}

func TestBuildOptions_NodeEmulationDisabledForWeb(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	cfg.Target = domain.TargetWeb

	opts, err := buildOptions(cfg, root)
	require.NoError(t, err)

	assert.Len(t, opts.Define, 1)
}

func TestInputsFromMetafile(t *testing.T) {
	root := t.TempDir()
	raw := `{
		"inputs": {
			"lib/js/src/util.js": {"bytes": 10},
			"lib/js/src/Handler.js": {"bytes": 20},
			"<define:process.env.NODE_ENV>": {"bytes": 13}
		},
		"outputs": {}
	}`

	inputs, err := inputsFromMetafile(raw, root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "lib", "js", "src", "Handler.js"),
		filepath.Join(root, "lib", "js", "src", "util.js"),
	}, inputs)
}

func TestInputsFromMetafile_Invalid(t *testing.T) {
	_, err := inputsFromMetafile("{", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse esbuild metafile")
}

func TestInputsFromMetafile_Empty(t *testing.T) {
	inputs, err := inputsFromMetafile("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, inputs)
}
