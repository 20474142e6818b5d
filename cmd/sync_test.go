package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"radarr-sync/core/config"
	"radarr-sync/core/instance"
	"radarr-sync/core/logger"
	"radarr-sync/core/metrics"
	"radarr-sync/core/radarr"
	"radarr-sync/core/radarr/radarrtest"
	"radarr-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "cmd-test-key"

func writeINI(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radarr.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T, iniPath, source string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Instances: instance.Config{ConfigFile: iniPath, SourceSection: source},
		Sync:      reconcile.Config{Parallel: 1},
		HTTP:      radarr.Config{TimeoutSeconds: 5, UserAgent: "radarr-sync-test", MaxConnsPerHost: 4},
		Log:       logger.Config{Level: "debug", Format: "json", File: filepath.Join(dir, "sync.log")},
		Metrics:   metrics.Config{Textfile: filepath.Join(dir, "radarrsync.prom")},
	}
}

func TestSync_EndToEnd(t *testing.T) {
	source := radarrtest.New(t, testAPIKey,
		radarr.Movie{TMDbID: 1, Title: "A", TitleSlug: "a-1", QualityProfileID: 4, Monitored: true, Path: "/movies/A"},
		radarr.Movie{TMDbID: 2, Title: "B", TitleSlug: "b-2", QualityProfileID: 5, Monitored: true, Path: "/movies/B"},
	)
	target := radarrtest.New(t, testAPIKey)

	iniPath := writeINI(t, fmt.Sprintf(`[DEFAULT]
api_key = %s

[Radarr]
url = %s

[Radarr4k]
url = %s
source_profile = 4
target_profile = 7
path_from = /movies
path_to = /data/movies
`, testAPIKey, source.URL(), target.URL()))

	cfg := testConfig(t, iniPath, "Radarr")
	require.NoError(t, Sync(context.Background(), cfg))

	created := target.Created()
	require.Len(t, created, 1)
	assert.Equal(t, 1, created[0].TMDbID)
	assert.Equal(t, 7, created[0].QualityProfileID)
	assert.Equal(t, "/data/movies/A", created[0].Path)

	logs, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"run_id"`)
	assert.Contains(t, string(logs), "Added movie")
	assert.NotContains(t, string(logs), testAPIKey)

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `radarrsync_creates_total{target="Radarr4k"} 1`)

	// Second run adds nothing
	require.NoError(t, Sync(context.Background(), cfg))
	assert.Len(t, target.Created(), 1)
}

func TestSync_FailedTarget(t *testing.T) {
	source := radarrtest.New(t, testAPIKey,
		radarr.Movie{TMDbID: 1, Title: "A", QualityProfileID: 4, Path: "/movies/A"},
	)
	broken := radarrtest.New(t, "other-key")
	healthy := radarrtest.New(t, testAPIKey)

	iniPath := writeINI(t, fmt.Sprintf(`[Radarr]
url = %s
api_key = %s

[broken]
url = %s
api_key = %s
source_profile = 4
target_profile = 7
path_from = /movies
path_to = /data

[healthy]
url = %s
api_key = %s
source_profile = 4
target_profile = 7
path_from = /movies
path_to = /data
`, source.URL(), testAPIKey, broken.URL(), testAPIKey, healthy.URL(), testAPIKey))

	err := Sync(context.Background(), testConfig(t, iniPath, "Radarr"))
	require.ErrorIs(t, err, reconcile.ErrTargetsFailed)
	assert.Contains(t, err.Error(), "broken")
	assert.Len(t, healthy.Created(), 1)
}

func TestSync_SourceUnavailable(t *testing.T) {
	source := radarrtest.New(t, "other-key")
	target := radarrtest.New(t, testAPIKey)

	iniPath := writeINI(t, fmt.Sprintf(`[Radarr]
url = %s
api_key = %s

[target]
url = %s
api_key = %s
source_profile = 4
target_profile = 7
path_from = /movies
path_to = /data
`, source.URL(), testAPIKey, target.URL(), testAPIKey))

	cfg := testConfig(t, iniPath, "Radarr")
	err := Sync(context.Background(), cfg)
	require.ErrorIs(t, err, radarr.ErrRemote)
	assert.Contains(t, err.Error(), "sync aborted")
	assert.Equal(t, 0, target.ListRequests())

	// Metrics are still exported
	_, statErr := os.Stat(cfg.Metrics.Textfile)
	assert.NoError(t, statErr)

	// The configured log file records why the run stopped
	logs, readErr := os.ReadFile(cfg.Log.File)
	require.NoError(t, readErr)
	assert.Contains(t, string(logs), "Sync aborted")
	assert.Contains(t, string(logs), "status 401")
	assert.NotContains(t, string(logs), testAPIKey)
}

func TestSync_ConfigurationError(t *testing.T) {
	iniPath := writeINI(t, `[Radarr]
url = http://localhost:7878
api_key = key

[target]
url = http://localhost:7879
api_key = key
source_profile = four
target_profile = 7
path_from = /movies
path_to = /data
`)

	err := Sync(context.Background(), testConfig(t, iniPath, "Radarr"))
	require.ErrorIs(t, err, instance.ErrConfiguration)
	assert.Contains(t, err.Error(), "source_profile")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	RootCmd.SetArgs([]string{"unexpected"})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	err := RootCmd.Execute()
	require.Error(t, err)
}

func TestRootCmd_RequiresConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	RootCmd.SetArgs([]string{"--source_section", "Radarr"})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	err = RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instances.config_file")
}
