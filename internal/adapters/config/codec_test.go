package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/config"
	"go.trai.ch/pack/internal/core/domain"
)

func TestMarshal_YAMLShape(t *testing.T) {
	cfg := config.NewProvider("/work").GetConfig()

	data, err := config.Marshal(cfg, config.FormatYAML)
	require.NoError(t, err)

	out := string(data)
	for _, want := range []string{
		"mode: development",
		"entry: /work/lib/js/src/Handler.js",
		"target: node",
		"filename: dist.js",
		"path: /work",
		"type: commonjs-module",
		"global: false",
		"__filename: false",
		"__dirname: false",
		"errorDetails: true",
	} {
		assert.Contains(t, out, want)
	}
}

func TestMarshal_JSONShape(t *testing.T) {
	cfg := config.NewProvider("/work").GetConfig()

	data, err := config.Marshal(cfg, config.FormatJSON)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"library": {`)
	assert.Contains(t, out, `"type": "commonjs-module"`)
	assert.Contains(t, out, `"__dirname": false`)
	assert.Contains(t, out, `"errorDetails": true`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRoundTrip(t *testing.T) {
	cfg := config.NewProvider(t.TempDir()).GetConfig()

	for _, format := range []config.Format{config.FormatYAML, config.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := config.Marshal(cfg, format)
			require.NoError(t, err)

			got, err := config.Unmarshal(data, format)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestUnmarshal_RejectsUnknownValues(t *testing.T) {
	content := `
mode: development
entry: /work/index.js
target: electron
output:
  filename: dist.js
  path: /work
  library:
    type: commonjs-module
`
	_, err := config.Unmarshal([]byte(content), config.FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestUnmarshal_InvalidSyntax(t *testing.T) {
	_, err := config.Unmarshal([]byte("mode: [ INVALID"), config.FormatYAML)
	require.ErrorContains(t, err, "failed to parse yaml configuration")

	_, err = config.Unmarshal([]byte("{"), config.FormatJSON)
	require.ErrorContains(t, err, "failed to parse json configuration")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    config.Format
		wantErr bool
	}{
		{"yaml", config.FormatYAML, false},
		{"YML", config.FormatYAML, false},
		{"json", config.FormatJSON, false},
		{"toml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.NewProvider(tmpDir).GetConfig()

	for _, name := range []string{"pack.yaml", "nested/pack.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			require.NoError(t, config.Save(path, cfg))

			got, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.toml")
	err := config.Save(path, config.NewProvider("/work").GetConfig())
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read configuration file")
}
