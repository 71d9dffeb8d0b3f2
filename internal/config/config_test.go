package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[database]
user = "postgres"
dbname = "smc_assignment"

[travel_time]
url = "http://travel.local"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 50.0, cfg.Matching.AutoAssignThreshold)
	assert.Equal(t, 5, cfg.Matching.TopCandidates)
	assert.Equal(t, 48.0, cfg.Compliance.MaxWeeklyHours)
	assert.Equal(t, 11.0, cfg.Compliance.MinRestHours)
	assert.Equal(t, 60, cfg.TravelTime.FallbackMinutes)
	assert.Equal(t, 30.0, cfg.TravelTime.FallbackMiles)
	assert.Equal(t, 5, cfg.GoogleCalendar.Timeout)
	assert.Equal(t, "Europe/London", cfg.Schedule.Timezone)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[matching]
auto_assign_threshold = 65
top_candidates = 3
scoring_workers = 2
`))
	require.NoError(t, err)

	assert.Equal(t, 65.0, cfg.Matching.AutoAssignThreshold)
	assert.Equal(t, 3, cfg.Matching.TopCandidates)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing travel time url",
			body: "[database]\nuser = \"u\"\ndbname = \"d\"\n",
		},
		{
			name: "calendar enabled without credentials",
			body: minimalConfig + "\n[google_calendar]\nenabled = true\n",
		},
		{
			name: "unknown timezone",
			body: minimalConfig + "\n[schedule]\ntimezone = \"Mars/Olympus\"\n",
		},
		{
			name: "bad sslmode",
			body: "[database]\nuser = \"u\"\ndbname = \"d\"\nsslmode = \"sometimes\"\n\n[travel_time]\nurl = \"http://travel.local\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", db.DSN())
}
