package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiftmatch_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/shiftmatch
planningHorizonWeeks: 4
visitTemplates:
  - clientID: client-1
    rrule: "FREQ=WEEKLY;BYDAY=MO,WE,FR"
    startTime: "09:00"
    endTime: "12:00"
    requiredSkills: [medication]
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/shiftmatch", cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.PlanningHorizonWeeks)
	require.Len(t, cfg.VisitTemplates, 1)
	assert.Equal(t, "client-1", cfg.VisitTemplates[0].ClientID)
	assert.Equal(t, []string{"medication"}, cfg.VisitTemplates[0].RequiredSkills)
}

func TestLoadFromPathDefaultsHorizon(t *testing.T) {
	path := writeConfig(t, `databaseURL: postgres://localhost:5432/shiftmatch`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PlanningHorizonWeeks)
}

func TestLoadFromPathEnvOverride(t *testing.T) {
	path := writeConfig(t, `databaseURL: postgres://localhost:5432/shiftmatch`)
	t.Setenv(DatabaseURLEnvVar, "postgres://db.internal:5432/shiftmatch")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal:5432/shiftmatch", cfg.DatabaseURL)
}

func TestLoadFromPathMissingDatabaseURL(t *testing.T) {
	path := writeConfig(t, `planningHorizonWeeks: 4`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadFromPathInvalidRRule(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/shiftmatch
visitTemplates:
  - clientID: client-1
    rrule: "FREQ=SOMETIMES"
    startTime: "09:00"
    endTime: "12:00"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}
