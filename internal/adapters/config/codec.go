package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for build configurations.
type Format string

const (
	// FormatYAML encodes the configuration as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON encodes the configuration as indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat converts a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "unknown format name"), "format", s)
	}
}

// FormatFromPath picks the format matching the file extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Marshal encodes cfg in the given format.
func Marshal(cfg domain.BuildConfig, format Format) ([]byte, error) {
	file := toPackfile(cfg)

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&file); err != nil {
			return nil, zerr.Wrap(err, "failed to encode configuration as yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, zerr.Wrap(err, "failed to encode configuration as yaml")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(&file, "", "  ")
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode configuration as json")
		}
		return append(data, '\n'), nil
	default:
		return nil, unsupportedFormat(format)
	}
}

// Unmarshal decodes a configuration in the given format and validates it.
func Unmarshal(data []byte, format Format) (domain.BuildConfig, error) {
	var file Packfile

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return domain.BuildConfig{}, zerr.Wrap(err, "failed to parse yaml configuration")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return domain.BuildConfig{}, zerr.Wrap(err, "failed to parse json configuration")
		}
	default:
		return domain.BuildConfig{}, unsupportedFormat(format)
	}

	cfg := file.toDomain()
	if err := cfg.Validate(); err != nil {
		return domain.BuildConfig{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, choosing the format from the file extension.
func Save(path string, cfg domain.BuildConfig) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create configuration directory"), "path", path)
	}

	//nolint:gosec // path is provided by user
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write configuration file"), "path", path)
	}
	return nil
}

// Load reads a configuration previously written by Save.
func Load(path string) (domain.BuildConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.BuildConfig{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.BuildConfig{}, zerr.With(zerr.Wrap(err, "failed to read configuration file"), "path", path)
	}

	cfg, err := Unmarshal(data, format)
	if err != nil {
		return domain.BuildConfig{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func unsupportedFormat(format Format) error {
	return zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "no codec for format"), "format", string(format))
}
