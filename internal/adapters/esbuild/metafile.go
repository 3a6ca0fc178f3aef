package esbuild

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// metafile is the subset of the esbuild metafile that pack reads.
type metafile struct {
	Inputs map[string]metafileInput `json:"inputs"`
}

type metafileInput struct {
	Bytes int `json:"bytes"`
}

// inputsFromMetafile returns the absolute, sorted paths of every file-backed input.
// Virtual modules (namespaced keys such as "<define:...>") are skipped.
func inputsFromMetafile(raw, workDir string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, zerr.Wrap(err, "failed to parse esbuild metafile")
	}

	inputs := make([]string, 0, len(meta.Inputs))
	for key := range meta.Inputs {
		if strings.Contains(key, ":") || strings.HasPrefix(key, "<") {
			continue
		}
		inputs = append(inputs, absPath(workDir, filepath.FromSlash(key)))
	}
	slices.Sort(inputs)
	return inputs, nil
}
