// Package builder implements the cached bundle build.
package builder

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder runs the bundler for a configuration unless a valid cached bundle exists.
type Builder struct {
	bundler   ports.Bundler
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	telemetry ports.Telemetry
	now       func() time.Time
}

// NewBuilder creates a new Builder.
func NewBuilder(
	bundler ports.Bundler,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	telemetry ports.Telemetry,
) *Builder {
	return &Builder{
		bundler:   bundler,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		now:       time.Now,
	}
}

// Build produces the bundle described by cfg. Unless force is set, a build whose
// recorded inputs and output are unchanged is skipped and reported as cached.
// The returned status is VertexStatusCompleted, VertexStatusCached or VertexStatusFailed.
// Bundler warnings are recorded on the build's vertex.
func (b *Builder) Build(ctx context.Context, cfg domain.BuildConfig, force bool) (domain.VertexStatus, error) {
	output := cfg.OutputFile()
	ctx, vertex := b.telemetry.Record(ctx, "bundle "+filepath.Base(output), ports.WithInputs(cfg.Entry))

	if !force && b.checkCacheHit(cfg, output) {
		vertex.Cached()
		return domain.VertexStatusCached, nil
	}

	result, err := b.bundler.Bundle(ctx, cfg)
	if err != nil {
		err = errors.Join(
			domain.ErrBuildExecutionFailed,
			zerr.With(zerr.Wrap(err, "failed to bundle "+filepath.Base(output)), "output", output),
		)
		vertex.Complete(err)
		return domain.VertexStatusFailed, err
	}

	for _, warning := range result.Warnings {
		vertex.Log(domain.LogLevelWarn, warning)
	}

	if err := b.updateCache(cfg, result); err != nil {
		vertex.Complete(err)
		return domain.VertexStatusFailed, err
	}

	vertex.Complete(nil)
	return domain.VertexStatusCompleted, nil
}

func (b *Builder) checkCacheHit(cfg domain.BuildConfig, output string) bool {
	info, err := b.store.Get(output)
	if err != nil || info == nil || len(info.Inputs) == 0 {
		return false
	}

	inputHash, err := b.hasher.ComputeInputHash(cfg, info.Inputs)
	if err != nil || inputHash != info.InputHash {
		return false
	}

	outputHash, err := b.hasher.ComputeOutputHash(output)
	if err != nil || outputHash != info.OutputHash {
		return false
	}

	return true
}

func (b *Builder) updateCache(cfg domain.BuildConfig, result *domain.BundleResult) error {
	inputHash, err := b.hasher.ComputeInputHash(cfg, result.Inputs)
	if err != nil {
		return zerr.Wrap(err, "failed to compute input hash")
	}

	outputHash, err := b.hasher.ComputeOutputHash(result.OutputPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to compute output hash"), "output", result.OutputPath)
	}

	info := domain.BuildInfo{
		Output:     cfg.OutputFile(),
		InputHash:  inputHash,
		OutputHash: outputHash,
		Inputs:     result.Inputs,
		Timestamp:  b.now(),
	}
	if err := b.store.Put(info); err != nil {
		return zerr.Wrap(err, "failed to store build info")
	}

	return nil
}
