package prefstore

import (
	"io"

	"dataset_assistant/internal/assistant"
	"dataset_assistant/internal/config"
)

// Store 带关闭能力的偏好存储
type Store interface {
	assistant.PreferenceStore
	io.Closer
}

type nopCloser struct {
	*MemoryStore
}

func (nopCloser) Close() error { return nil }

// New 根据配置选择存储后端
func New(cfg config.PreferenceConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.DSN)
	case config.BackendMemory, "":
		return nopCloser{NewMemoryStore()}, nil
	default:
		return nil, config.ErrUnknownBackend
	}
}
