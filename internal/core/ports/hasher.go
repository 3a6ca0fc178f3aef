package ports

import "go.trai.ch/pack/internal/core/domain"

// Hasher defines the interface for computing build fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash computes a single hash over the configuration and the content of every input file.
	ComputeInputHash(cfg domain.BuildConfig, inputs []string) (string, error)

	// ComputeOutputHash computes the hash of a generated bundle.
	ComputeOutputHash(path string) (string, error)
}
