package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
assistant:
  thinking_min: 100ms
  thinking_max: 2s
  max_history: 20
preference:
  backend: sqlite
  dsn: /tmp/prefs.db
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 100*time.Millisecond, cfg.Assistant.ThinkingMin)
	assert.Equal(t, 2*time.Second, cfg.Assistant.ThinkingMax)
	assert.Equal(t, 20, cfg.Assistant.MaxHistory)
	assert.Equal(t, BackendSQLite, cfg.Preference.Backend)
	assert.Equal(t, "assistant:personalize:", cfg.Preference.KeyPrefix)
	assert.Equal(t, 1024, cfg.WebSocket.ReadBufferSize)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PingPeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"端口越界", "server:\n  port: 70000\n", ErrInvalidPort},
		{"思考延迟颠倒", "assistant:\n  thinking_min: 2s\n  thinking_max: 1s\n", ErrInvalidThinkingTime},
		{"历史上限为负", "assistant:\n  max_history: -1\n", ErrInvalidMaxHistory},
		{"未知后端", "preference:\n  backend: redis\n", ErrUnknownBackend},
		{"sqlite缺少dsn", "preference:\n  backend: sqlite\n", ErrEmptyDSN},
		{"pong小于ping", "websocket:\n  ping_period: 10s\n  pong_wait: 5s\n", ErrInvalidPongWait},
		{"日志级别", "log:\n  level: verbose\n", ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validateConfig(cfg))
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Preference.Backend)
	assert.Equal(t, 600*time.Millisecond, cfg.Assistant.ThinkingMin)
	assert.Equal(t, 100, cfg.Assistant.MaxHistory)
}
