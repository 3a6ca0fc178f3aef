package domain

import "time"

// BuildInfo records the fingerprint of the last successful bundle for an output file.
type BuildInfo struct {
	Output     string    `json:"output,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Inputs     []string  `json:"inputs,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}

// BundleResult describes what the bundler produced.
type BundleResult struct {
	// OutputPath is the absolute path of the written bundle.
	OutputPath string
	// Bytes is the size of the written bundle.
	Bytes int
	// Inputs are the absolute paths of every source module folded into the bundle, sorted.
	Inputs []string
	// Warnings are the diagnostics the bundler reported without failing.
	Warnings []string
}
