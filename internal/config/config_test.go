package config

import (
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("SCHEDULE_WORK_START", "")
	t.Setenv("SCHEDULE_WORK_END", "")
	t.Setenv("SCHEDULE_LATE_THRESHOLD", "")
	t.Setenv("APP_TIMEZONE", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "09:00", cfg.Schedule.WorkStartTime)
	assert.Equal(t, 15, cfg.Schedule.LateThresholdMinutes)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.NotNil(t, cfg.App.Location)
	assert.Contains(t, cfg.DatabaseURL(), "secret@")
}

func TestLoad_ScheduleOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCHEDULE_WORK_START", "08:30")
	t.Setenv("SCHEDULE_LATE_THRESHOLD", "5")
	t.Setenv("SCHEDULE_OFF_DAYS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "08:30", cfg.Schedule.WorkStartTime)
	assert.Equal(t, 5, cfg.Schedule.LateThresholdMinutes)
	assert.Equal(t, []int{0}, cfg.Schedule.OffDays)
	assert.Equal(t, []int{5, 6}, schedule.DefaultScheduleConfig.OffDays)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing jwt secret", "JWT_SECRET_KEY", ""},
		{"missing db password", "DB_PASSWORD", ""},
		{"bad threshold", "SCHEDULE_LATE_THRESHOLD", "soon"},
		{"bad off day", "SCHEDULE_OFF_DAYS", "8"},
		{"bad work start", "SCHEDULE_WORK_START", "nine"},
		{"bad timezone", "APP_TIMEZONE", "Mars/Olympus"},
		{"bad port", "APP_PORT", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	c := &Config{App: AppConfig{LogLevel: "DEBUG"}}
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
	c.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}
