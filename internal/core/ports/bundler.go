package ports

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
)

// Bundler turns a build configuration into a bundle file on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle traverses the entry module's dependencies and writes the output file.
	//
	// Missing entry modules, unsupported option combinations and write failures
	// are all reported here.
	Bundle(ctx context.Context, cfg domain.BuildConfig) (*domain.BundleResult, error)
}
