package prefstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value INTEGER NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore 基于SQLite的偏好存储
type SQLiteStore struct {
	DB *sql.DB
}

// OpenSQLite 打开数据库并确保表存在
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开SQLite失败: %w", err)
	}
	// 内存库每个连接独立，限制为单连接
	db.SetMaxOpenConns(1)

	store, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore 使用已有连接创建存储
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("创建preferences表失败: %w", err)
	}
	return &SQLiteStore{DB: db}, nil
}

// Get 读取偏好
func (s *SQLiteStore) Get(ctx context.Context, key string) (bool, bool, error) {
	var v int
	err := s.DB.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("读取偏好失败: %w", err)
	}
	return v != 0, true, nil
}

// Set 保存偏好
func (s *SQLiteStore) Set(ctx context.Context, key string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("保存偏好失败: %w", err)
	}
	return nil
}

// Close 关闭数据库
func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
