// Package app implements the application layer for pack.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pack/internal/adapters/config"  //nolint:depguard // Config codecs are part of the app surface
	"go.trai.ch/pack/internal/adapters/watcher" //nolint:depguard // Debouncer drives watch mode
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/engine/builder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	provider       ports.ConfigProvider
	builder        *builder.Builder
	watcher        ports.Watcher
	logger         ports.Logger
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	provider ports.ConfigProvider,
	b *builder.Builder,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		provider:       provider,
		builder:        b,
		watcher:        w,
		logger:         log,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow overrides the window used to coalesce file events in watch mode.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	NoCache bool
	Watch   bool
}

// Build bundles the entry module once, or keeps rebuilding it when Watch is set.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	if opts.Watch {
		return a.Watch(ctx, opts)
	}
	return a.build(ctx, a.provider.GetConfig(), opts.NoCache)
}

// build runs one build of cfg. Progress and outcome are reported through the
// builder's telemetry.
func (a *App) build(ctx context.Context, cfg domain.BuildConfig, force bool) error {
	_, err := a.builder.Build(ctx, cfg, force)
	return err
}

// PrintConfig writes the build configuration to w in the given format.
func (a *App) PrintConfig(_ context.Context, w io.Writer, format config.Format) error {
	data, err := config.Marshal(a.provider.GetConfig(), format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return zerr.Wrap(err, "failed to write configuration")
	}
	return nil
}

// WriteConfig persists the build configuration to path. The format follows the file extension.
func (a *App) WriteConfig(_ context.Context, path string) error {
	if err := config.Save(path, a.provider.GetConfig()); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote configuration to %s", path))
	return nil
}

// Watch builds once and then rebuilds after every batch of source changes
// until ctx is cancelled. Failed rebuilds are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	cfg := a.provider.GetConfig()

	if err := a.build(ctx, cfg, opts.NoCache); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, cfg.Output.Path); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.Output.Path))

	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []string)

	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})

	// Event Routine
	g.Go(func() error {
		defer debouncer.Stop()
		for event := range a.watcher.Events() {
			if isSourceChange(cfg, event.Path) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})

	// Rebuild Routine
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-batches:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
				if err := a.build(ctx, cfg, false); err != nil && ctx.Err() == nil {
					a.logger.Error(err)
				}
			}
		}
	})

	return g.Wait()
}

// isSourceChange reports whether a change to path can affect the bundle.
// Writes to the bundle itself and to pack metadata are ignored.
func isSourceChange(cfg domain.BuildConfig, path string) bool {
	if filepath.Clean(path) == filepath.Clean(cfg.OutputFile()) {
		return false
	}
	packDir := filepath.Join(cfg.Output.Path, domain.PackDirName)
	rel, err := filepath.Rel(packDir, path)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Bundle bool
}

// Clean removes pack metadata and, when requested, the generated bundle.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	cfg := a.provider.GetConfig()
	remove(filepath.Join(cfg.Output.Path, domain.PackDirName), "build info store")

	if opts.Bundle {
		remove(cfg.OutputFile(), "bundle")
	}

	return errs
}
