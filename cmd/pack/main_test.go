package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/cas"
	"go.trai.ch/pack/internal/adapters/config"
	"go.trai.ch/pack/internal/adapters/esbuild"
	"go.trai.ch/pack/internal/adapters/fs"
	"go.trai.ch/pack/internal/adapters/logger"
	"go.trai.ch/pack/internal/adapters/telemetry/progrock"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.trai.ch/pack/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

// newProvider assembles real components for a project rooted at root.
func newProvider(t *testing.T, root string, stderr *bytes.Buffer) ComponentProvider {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	store, err := cas.NewStore(filepath.Join(root, domain.DefaultStorePath()))
	require.NoError(t, err)

	log := logger.NewWithWriter(stderr)
	telemetry := progrock.New(log)
	b := builder.NewBuilder(esbuild.NewBundler(), fs.NewHasher(), store, telemetry)
	w := mocks.NewMockWatcher(gomock.NewController(t))
	application := app.New(config.NewProvider(root), b, w, log)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:       application,
			Logger:    log,
			Telemetry: telemetry,
		}, func() { _ = telemetry.Close() }, nil
	}
}

func TestRun_Build(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, domain.EntryRelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(entry), domain.DirPerm))
	require.NoError(t, os.WriteFile(entry, []byte("module.exports = { handler: () => 42 };\n"), domain.FilePerm))

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build"}, stdout, stderr, newProvider(t, root, stderr))

	assert.Equal(t, 0, exitCode, stderr.String())
	assert.FileExists(t, filepath.Join(root, domain.OutputFileName))
	assert.Contains(t, stderr.String(), "wrote dist.js")
	assert.Contains(t, stderr.String(), "bundle dist.js done")
}

func TestRun_BuildMissingEntry(t *testing.T) {
	root := t.TempDir()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build"}, stdout, stderr, newProvider(t, root, stderr))

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Handler.js")
}

func TestRun_Config(t *testing.T) {
	root := t.TempDir()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"config", "--format", "json"}, stdout, stderr, newProvider(t, root, stderr))

	assert.Equal(t, 0, exitCode, stderr.String())
	assert.Contains(t, stdout.String(), `"mode": "development"`)
	assert.Contains(t, stdout.String(), `"errorDetails": true`)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_UnknownCommand(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"deploy"}, stdout, stderr, newProvider(t, t.TempDir(), stderr))

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "unknown command")
}
