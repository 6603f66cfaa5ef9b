package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, 24, cfg.Auth.TokenExpireHours)
	assert.False(t, cfg.Monitor.SensorFirstMatch)
}

func TestLoadExternalFileOverridesEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"server": {"host": "127.0.0.1", "port": 9090},
		"auth": {"username": "ops", "password": "secret"},
		"monitor": {"settle_wait_ms": 250, "sensor_first_match": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "ops", cfg.Auth.Username)
	assert.True(t, cfg.Monitor.SensorFirstMatch)
	// 未设置的字段仍然落到默认值
	assert.Equal(t, 24, cfg.Auth.TokenExpireHours)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSettleWaitClamping(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want time.Duration
	}{
		{"default when unset", 0, 300 * time.Millisecond},
		{"clamped low", 50, 200 * time.Millisecond},
		{"clamped high", 5000, 500 * time.Millisecond},
		{"in range", 250, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Monitor: MonitorConfig{SettleWaitMs: tt.ms}}
			assert.Equal(t, tt.want, cfg.SettleWait())
		})
	}
}

func TestStreamInterval(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 3*time.Second, cfg.StreamInterval())

	cfg.Monitor.StreamIntervalSec = 10
	assert.Equal(t, 10*time.Second, cfg.StreamInterval())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Server.Port = 9999
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, reloaded.Server.Port)
}
