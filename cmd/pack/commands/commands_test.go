package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/cmd/pack/commands"
	"go.trai.ch/pack/internal/adapters/config"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/build"
	"go.trai.ch/pack/internal/core/domain"
)

type mockApp struct {
	buildFunc       func(ctx context.Context, opts app.BuildOptions) error
	printConfigFunc func(ctx context.Context, w io.Writer, format config.Format) error
	writeConfigFunc func(ctx context.Context, path string) error
	cleanFunc       func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) PrintConfig(ctx context.Context, w io.Writer, format config.Format) error {
	if m.printConfigFunc != nil {
		return m.printConfigFunc(ctx, w, format)
	}
	return nil
}

func (m *mockApp) WriteConfig(ctx context.Context, path string) error {
	if m.writeConfigFunc != nil {
		return m.writeConfigFunc(ctx, path)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		called := false

		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--no-cache", "--watch"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, captured.NoCache)
		assert.True(t, captured.Watch)
	})

	t.Run("defaults to a cached single build", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{}, captured)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"build", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Config(t *testing.T) {
	t.Run("prints yaml by default", func(t *testing.T) {
		var captured config.Format
		mock := &mockApp{
			printConfigFunc: func(_ context.Context, w io.Writer, format config.Format) error {
				captured = format
				_, err := io.WriteString(w, "mode: development\n")
				return err
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"config"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, config.FormatYAML, captured)
		assert.Equal(t, "mode: development\n", buf.String())
	})

	t.Run("honours the format flag", func(t *testing.T) {
		var captured config.Format
		mock := &mockApp{
			printConfigFunc: func(_ context.Context, _ io.Writer, format config.Format) error {
				captured = format
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"config", "--format", "json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, config.FormatJSON, captured)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"config", "--format", "toml"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("writes to a file", func(t *testing.T) {
		var captured string
		mock := &mockApp{
			printConfigFunc: func(context.Context, io.Writer, config.Format) error {
				panic("should not be called")
			},
			writeConfigFunc: func(_ context.Context, path string) error {
				captured = path
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"config", "--write", "pack.config.yaml"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "pack.config.yaml", captured)
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "cache only by default", args: []string{"clean"}, want: app.CleanOptions{}},
		{name: "bundle flag", args: []string{"clean", "--bundle"}, want: app.CleanOptions{Bundle: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "pack version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "pack version "+build.Version)
	assert.Contains(t, buf.String(), "commit: "+build.Commit)
}
