package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监听配置文件变化，变化后重新加载并回调。
// 监听的是所在目录，编辑器以替换方式保存文件时也能收到事件。
type Watcher struct {
	filename string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	onChange func(*Config)
	onError  func(error)
}

// NewWatcher 创建配置文件监听器
func NewWatcher(filename string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("解析配置路径失败: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听失败: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("监听配置目录失败: %w", err)
	}

	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		filename: abs,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Run 处理文件事件直到 ctx 取消。连续保存只触发一次重新加载，
// 加载失败时保留旧配置。
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)

		case <-fire:
			fire = nil
			cfg, err := Load(w.filename)
			if err != nil {
				w.onError(err)
				continue
			}
			w.onChange(cfg)
		}
	}
}
