package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig() {
	cfg = nil
	vp = nil
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), "config.yaml", `
game:
  horizon: 50
  rewards:
    step_cost: -0.5
    win_bonus: 25.0
  observation:
    radius: 2
sim:
  episodes: 10
  workers: 2
`)

	resetConfig()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 50, c.Game.Horizon)
	assert.Equal(t, -0.5, c.Game.Rewards.StepCost)
	assert.Equal(t, 25.0, c.Game.Rewards.WinBonus)
	assert.Equal(t, 2, c.Game.Observation.Radius)
	assert.Equal(t, 10, c.Sim.Episodes)
	assert.Equal(t, 2, c.Sim.Workers)
	assert.Equal(t, configFile, FilePath())
}

func TestInitWithDefaults(t *testing.T) {
	resetConfig()

	// A missing file is fine, defaults carry the run.
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 100, c.Game.Horizon)
	assert.Equal(t, -0.1, c.Game.Rewards.StepCost)
	assert.Equal(t, 100.0, c.Game.Rewards.WinBonus)
	assert.Equal(t, 1, c.Game.Observation.Radius)
	assert.Equal(t, 100, c.Sim.Episodes)
	assert.Equal(t, 4, c.Sim.Workers)
	assert.Equal(t, int64(0), c.Sim.Seed)
	assert.True(t, c.Sim.Experience.Enabled)
	assert.Equal(t, 10000, c.Sim.Experience.Capacity)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
}

func TestInitRejectsMalformedFile(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), "config.yaml", "game: [not: a: map\n")

	resetConfig()
	err := Init(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestInitValidation(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "NonPositiveHorizon",
			content: `
game:
  horizon: 0
`,
		},
		{
			name: "NegativeWinBonus",
			content: `
game:
  rewards:
    win_bonus: -1.0
`,
		},
		{
			name: "ZeroObservationRadius",
			content: `
game:
  observation:
    radius: 0
`,
		},
		{
			name: "NonPositiveWorkers",
			content: `
sim:
  workers: 0
`,
		},
		{
			name: "NonPositiveCapacity",
			content: `
sim:
  experience:
    capacity: -5
`,
		},
		{
			name: "UnknownLogLevel",
			content: `
log:
  level: loud
`,
		},
		{
			name: "UnknownLogFormat",
			content: `
log:
  format: xml
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tmpDir, tt.name+".yaml", tt.content)

			resetConfig()
			err := Init(configFile)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestEnvironmentVariables(t *testing.T) {
	resetConfig()

	t.Setenv("BOXPUSH_GAME_HORIZON", "200")
	t.Setenv("BOXPUSH_SIM_WORKERS", "8")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 200, c.Game.Horizon)
	assert.Equal(t, 8, c.Sim.Workers)
}

func TestSet(t *testing.T) {
	resetConfig()
	require.NoError(t, Init(""))

	Set("game.horizon", 75)
	Set("sim.episodes", 42)

	c := Get()
	assert.Equal(t, 75, c.Game.Horizon)
	assert.Equal(t, 42, c.Sim.Episodes)
}

func TestFilePathWithoutFile(t *testing.T) {
	resetConfig()
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	// Nothing was actually read from disk.
	assert.Equal(t, "", FilePath())
}
