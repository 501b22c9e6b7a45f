// Package logging 基于zap构建应用日志
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dataset_assistant/internal/config"
)

// New 根据日志配置创建zap日志器。
// 返回的 AtomicLevel 可在运行时通过 SetLevel 调整。
func New(cfg config.LogConfig) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("解析日志级别失败: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("创建日志器失败: %w", err)
	}
	return logger, zcfg.Level, nil
}

// SetLevel 修改运行中的日志级别
func SetLevel(atom zap.AtomicLevel, level string) error {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("解析日志级别失败: %w", err)
	}
	atom.SetLevel(l)
	return nil
}
