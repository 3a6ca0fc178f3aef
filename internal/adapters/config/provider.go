// Package config provides the build configuration for pack.
package config

import (
	"path/filepath"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var _ ports.ConfigProvider = (*Provider)(nil)

// Provider returns the bundle configuration of the project rooted at a directory.
type Provider struct {
	root string
}

// NewProvider creates a Provider for the project rooted at root.
// Relative roots are kept relative; callers that need absolute paths pass an absolute root.
func NewProvider(root string) *Provider {
	return &Provider{root: filepath.Clean(root)}
}

// Root returns the project directory the configuration is resolved against.
func (p *Provider) Root() string {
	return p.root
}

// GetConfig returns the configuration for bundling the handler entry module.
func (p *Provider) GetConfig() domain.BuildConfig {
	return domain.BuildConfig{
		Mode:   domain.ModeDevelopment,
		Entry:  filepath.Join(p.root, domain.EntryRelPath),
		Target: domain.TargetNode,
		Output: domain.Output{
			Filename: domain.OutputFileName,
			Path:     p.root,
			Library: domain.Library{
				Type: domain.LibraryCommonJSModule,
			},
		},
		Node: domain.NodeEmulation{
			Global:   false,
			Filename: false,
			Dirname:  false,
		},
		Stats: domain.Stats{
			ErrorDetails: true,
		},
	}
}
