package config

import "go.trai.ch/pack/internal/core/domain"

// Packfile represents the serialized form of a build configuration.
// Keys follow the layout bundler configuration files conventionally use.
type Packfile struct {
	Mode   string    `json:"mode"   yaml:"mode"`
	Entry  string    `json:"entry"  yaml:"entry"`
	Target string    `json:"target" yaml:"target"`
	Output OutputDTO `json:"output" yaml:"output"`
	Node   NodeDTO   `json:"node"   yaml:"node"`
	Stats  StatsDTO  `json:"stats"  yaml:"stats"`
}

// OutputDTO represents the output section of the configuration.
type OutputDTO struct {
	Filename string     `json:"filename" yaml:"filename"`
	Path     string     `json:"path"     yaml:"path"`
	Library  LibraryDTO `json:"library"  yaml:"library"`
}

// LibraryDTO represents the library export settings.
type LibraryDTO struct {
	Type string `json:"type" yaml:"type"`
}

// NodeDTO represents the node globals emulation toggles.
type NodeDTO struct {
	Global   bool `json:"global"     yaml:"global"`
	Filename bool `json:"__filename" yaml:"__filename"`
	Dirname  bool `json:"__dirname"  yaml:"__dirname"`
}

// StatsDTO represents the diagnostics settings.
type StatsDTO struct {
	ErrorDetails bool `json:"errorDetails" yaml:"errorDetails"`
}

func toPackfile(cfg domain.BuildConfig) Packfile {
	return Packfile{
		Mode:   string(cfg.Mode),
		Entry:  cfg.Entry,
		Target: string(cfg.Target),
		Output: OutputDTO{
			Filename: cfg.Output.Filename,
			Path:     cfg.Output.Path,
			Library:  LibraryDTO{Type: string(cfg.Output.Library.Type)},
		},
		Node: NodeDTO{
			Global:   cfg.Node.Global,
			Filename: cfg.Node.Filename,
			Dirname:  cfg.Node.Dirname,
		},
		Stats: StatsDTO{ErrorDetails: cfg.Stats.ErrorDetails},
	}
}

func (p Packfile) toDomain() domain.BuildConfig {
	return domain.BuildConfig{
		Mode:   domain.Mode(p.Mode),
		Entry:  p.Entry,
		Target: domain.Target(p.Target),
		Output: domain.Output{
			Filename: p.Output.Filename,
			Path:     p.Output.Path,
			Library:  domain.Library{Type: domain.LibraryType(p.Output.Library.Type)},
		},
		Node: domain.NodeEmulation{
			Global:   p.Node.Global,
			Filename: p.Node.Filename,
			Dirname:  p.Node.Dirname,
		},
		Stats: domain.Stats{ErrorDetails: p.Stats.ErrorDetails},
	}
}
