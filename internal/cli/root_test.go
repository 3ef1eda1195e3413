package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/kvdraft/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig stores a config with the history database inside a temp dir
// and returns the config path.
func writeConfig(t *testing.T, workspace string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Workspace = workspace
	cfg.History.Path = filepath.Join(dir, "data", "history.db")
	cfg.Log.File = filepath.Join(dir, "kvdraft.log")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd)
		assert.Equal(t, "kvdraft", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	t.Run("has global flags", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"config", "log-level", "workspace"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
		}
		assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
		assert.Equal(t, "w", cmd.PersistentFlags().Lookup("workspace").Shorthand)
	})

	t.Run("has subcommands", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, path := range [][]string{
			{"bulk", "encode"},
			{"bulk", "decode"},
			{"history", "add"},
			{"history", "urls"},
			{"history", "prune"},
			{"format-json"},
			{"format-error"},
		} {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err, path)
			assert.Equal(t, path[len(path)-1], strings.Fields(sub.Use)[0])
		}
	})
}

func TestRootOptions_Load(t *testing.T) {
	t.Run("flags override the config file", func(t *testing.T) {
		opts := &RootOptions{
			ConfigPath: writeConfig(t, "from-file"),
			Workspace:  "from-flag",
			LogLevel:   "debug",
		}
		require.NoError(t, opts.load(false))
		assert.Equal(t, "from-flag", opts.Config().Workspace)
		assert.Equal(t, "debug", opts.Config().Log.Level)
	})

	t.Run("keeps the file workspace without a flag", func(t *testing.T) {
		opts := &RootOptions{ConfigPath: writeConfig(t, "from-file")}
		require.NoError(t, opts.load(false))
		assert.Equal(t, "from-file", opts.Config().Workspace)
	})

	t.Run("rejects an invalid log level", func(t *testing.T) {
		opts := &RootOptions{ConfigPath: writeConfig(t, ""), LogLevel: "loud"}
		err := opts.load(false)
		assert.Error(t, err)
	})

	t.Run("missing config file yields defaults", func(t *testing.T) {
		opts := &RootOptions{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")}
		require.NoError(t, opts.load(false))
		assert.Equal(t, config.DefaultPageSize, opts.Config().History.PageSize)
	})
}
