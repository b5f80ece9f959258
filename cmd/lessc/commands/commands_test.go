package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/cmd/lessc/commands"
	"go.trai.ch/lessc/internal/app"
	"go.trai.ch/lessc/internal/build"
)

type mockApp struct {
	buildFunc func(ctx context.Context, opts app.BuildOptions) (*app.BuildReport, error)
	cleanFunc func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) (*app.BuildReport, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return &app.BuildReport{}, nil
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
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) (*app.BuildReport, error) {
				captured = opts
				return &app.BuildReport{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--config", "site/lessc.yaml", "--no-cache", "-j", "3"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{ConfigPath: "site/lessc.yaml", NoCache: true, Jobs: 3}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) (*app.BuildReport, error) {
				captured = opts
				return nil, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{ConfigPath: "lessc.yaml"}, captured)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) (*app.BuildReport, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"build", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_JSONFlag(t *testing.T) {
	var got []bool
	record := commands.WithLogFormat(func(json bool) {
		got = append(got, json)
	})

	cli := commands.New(&mockApp{}, record)
	cli.SetArgs([]string{"build", "--json"})
	require.NoError(t, cli.Execute(context.Background()))

	cli = commands.New(&mockApp{}, record)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, []bool{true, false}, got)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default cleans cache", args: []string{"clean"}, want: app.CleanOptions{ConfigPath: "lessc.yaml", Cache: true}},
		{name: "output", args: []string{"clean", "--output"}, want: app.CleanOptions{ConfigPath: "lessc.yaml", Output: true}},
		{name: "all", args: []string{"clean", "-a", "-c", "x.yaml"}, want: app.CleanOptions{ConfigPath: "x.yaml", Cache: true, Output: true}},
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

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "lessc version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}
