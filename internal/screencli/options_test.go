package screencli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"detprod/internal/config"
	"detprod/internal/report"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func env(t *testing.T, vars map[string]string) config.Env {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	e, err := config.LoadFrom(vars)
	require.NoError(t, err)
	return e
}

func TestDefaults(t *testing.T) {
	o, err := ParseArgs(newFS(), nil, env(t, nil))
	require.NoError(t, err)
	require.Empty(t, o.CatalogFiles)
	require.Equal(t, report.FormatTSV, o.Output)
	require.Equal(t, 1, o.SkipExitCode)
	require.Zero(t, o.Threads)
	require.False(t, o.KeepGoing)
}

func TestOnlyRepeatableAndGlob(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.toml", "b.toml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	o, err := ParseArgs(newFS(), []string{
		"--only", "TNT", filepath.Join(dir, "*.toml"), "--only", "nitramines", "-t", "4", "-k",
	}, env(t, nil))
	require.NoError(t, err)
	require.Equal(t, []string{"TNT", "nitramines"}, o.Only)
	require.Len(t, o.CatalogFiles, 2)
	require.Equal(t, 4, o.Threads)
	require.True(t, o.KeepGoing)
}

func TestEnvFallbacks(t *testing.T) {
	e := env(t, map[string]string{
		"DETPROD_CATALOG": "x.toml,y.toml",
		"DETPROD_DB":      "runs.db",
		"DETPROD_THREADS": "3",
	})
	o, err := ParseArgs(newFS(), []string{"--list-runs"}, e)
	require.NoError(t, err)
	require.Equal(t, []string{"x.toml", "y.toml"}, o.CatalogFiles)
	require.Equal(t, "runs.db", o.DBPath)
	require.Equal(t, 3, o.Threads)
	require.True(t, o.ListRuns)

	o, err = ParseArgs(newFS(), []string{"z.toml"}, e)
	require.NoError(t, err)
	require.Equal(t, []string{"z.toml"}, o.CatalogFiles)
}

func TestErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"list without db":   {"--list-runs"},
		"show without db":   {"--show-run", "abc"},
		"list and show":     {"--db", "r.db", "--list-runs", "--show-run", "abc"},
		"show with catalog": {"--db", "r.db", "--show-run", "abc", "c.toml"},
		"negative threads":  {"--threads", "-1"},
		"skip code range":   {"--skip-exit-code", "300"},
		"no glob match":     {filepath.Join(t.TempDir(), "*.toml")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArgs(newFS(), args, env(t, nil))
			require.Error(t, err)
		})
	}
}
