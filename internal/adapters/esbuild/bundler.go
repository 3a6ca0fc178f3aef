// Package esbuild implements ports.Bundler on top of the esbuild Go API.
package esbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler drives a single esbuild build per call.
type Bundler struct{}

// NewBundler creates a new Bundler.
func NewBundler() *Bundler {
	return &Bundler{}
}

// Bundle builds cfg.Entry into cfg.OutputFile.
func (b *Bundler) Bundle(ctx context.Context, cfg domain.BuildConfig) (*domain.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "bundle canceled")
	}

	workDir, err := filepath.Abs(cfg.Output.Path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve output path"), "path", cfg.Output.Path)
	}

	opts, err := buildOptions(cfg, workDir)
	if err != nil {
		return nil, err
	}

	result, err := run(ctx, opts)
	if err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, bundleError(cfg, result.Errors)
	}

	if err := writeOutputs(result.OutputFiles); err != nil {
		return nil, err
	}
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		for _, file := range result.OutputFiles {
			vertex.Log(domain.LogLevelInfo, fmt.Sprintf("wrote %s (%d bytes)", filepath.Base(file.Path), len(file.Contents)))
		}
	}

	inputs, err := inputsFromMetafile(result.Metafile, workDir)
	if err != nil {
		return nil, err
	}

	bundle := &domain.BundleResult{
		OutputPath: opts.Outfile,
		Inputs:     inputs,
		Warnings:   formatMessages(result.Warnings, api.WarningMessage, cfg.Stats.ErrorDetails),
	}
	for _, file := range result.OutputFiles {
		if file.Path == opts.Outfile {
			bundle.Bytes = len(file.Contents)
		}
	}

	return bundle, nil
}

// run executes the build through a build context so that ctx cancellation
// interrupts esbuild instead of waiting for it to finish.
func run(ctx context.Context, opts api.BuildOptions) (api.BuildResult, error) {
	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return api.BuildResult{Errors: ctxErr.Errors}, nil
	}
	defer buildCtx.Dispose()

	done := make(chan api.BuildResult, 1)
	go func() {
		done <- buildCtx.Rebuild()
	}()

	select {
	case result := <-done:
		return result, nil
	case <-ctx.Done():
		buildCtx.Cancel()
		<-done
		return api.BuildResult{}, zerr.Wrap(ctx.Err(), "bundle canceled")
	}
}

func writeOutputs(files []api.OutputFile) error {
	for _, file := range files {
		if err := os.MkdirAll(filepath.Dir(file.Path), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", filepath.Dir(file.Path))
		}
		if err := os.WriteFile(file.Path, file.Contents, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write bundle"), "path", file.Path)
		}
	}
	return nil
}

func bundleError(cfg domain.BuildConfig, msgs []api.Message) error {
	details := formatMessages(msgs, api.ErrorMessage, cfg.Stats.ErrorDetails)
	err := zerr.Wrap(domain.ErrBundleFailed, strings.Join(details, "\n"))
	err = zerr.With(err, "entry", cfg.Entry)
	err = zerr.With(err, "output", cfg.OutputFile())
	return zerr.With(err, "errors", len(msgs))
}

// formatMessages renders esbuild diagnostics. With details the output
// carries file locations, source excerpts and notes; otherwise only the text.
func formatMessages(msgs []api.Message, kind api.MessageKind, details bool) []string {
	if len(msgs) == 0 {
		return nil
	}

	if details {
		formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: kind})
		out := make([]string, 0, len(formatted))
		for _, f := range formatted {
			out = append(out, strings.TrimRight(f, "\n"))
		}
		return out
	}

	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}
