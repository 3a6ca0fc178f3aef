// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/pack/internal/core/domain"

// ConfigProvider produces the build configuration handed to the bundler.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_provider.go -destination=mocks/mock_config_provider.go -package=mocks
type ConfigProvider interface {
	// GetConfig returns a fully populated configuration.
	// It performs no I/O and every call returns an equal value.
	GetConfig() domain.BuildConfig
}
