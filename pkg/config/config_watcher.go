package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher 监听磁盘上的背景配置文件，变化时重新加载并归一化
//
// 监听的是配置文件所在目录而不是文件本身：很多编辑器保存时会先写临时文件再重命名，
// 直接监听文件会在第一次保存后丢失。
type ConfigWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan *BackgroundConfig
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool

	reloads int
	errors  int
}

// NewConfigWatcher 创建配置监听器（尚未启动）
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	return &ConfigWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: 200 * time.Millisecond,
		updates:  make(chan *BackgroundConfig, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates 重新加载成功的配置；只保留最新的一份，消费方来不及取时旧值被丢弃
func (cw *ConfigWatcher) Updates() <-chan *BackgroundConfig {
	return cw.updates
}

// Start 开始监听（非阻塞）
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.running {
		return nil
	}

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cw.running = true
	go cw.run(ctx)

	log.Printf("[ConfigWatcher] Watching %s", cw.path)
	return nil
}

// Stop 停止监听并等待后台 goroutine 退出；幂等
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		log.Printf("[ConfigWatcher] Warning: error closing watcher: %v", err)
	}
	log.Printf("[ConfigWatcher] Stopped")
}

// Stats 返回重新加载次数和错误次数
func (cw *ConfigWatcher) Stats() (reloads, errors int) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.reloads, cw.errors
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	// 编辑器保存时通常会触发多个事件，合并到一次重新加载
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(cw.debounce)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Warning: %v", err)
			cw.mu.Lock()
			cw.errors++
			cw.mu.Unlock()

		case <-pending:
			pending = nil
			cw.reload()
		}
	}
}

// reload 读取失败时保留当前配置，只记录警告
func (cw *ConfigWatcher) reload() {
	cfg, err := LoadBackgroundConfig(cw.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Warning: reload failed: %v (keeping current config)", err)
		cw.mu.Lock()
		cw.errors++
		cw.mu.Unlock()
		return
	}

	cw.mu.Lock()
	cw.reloads++
	cw.mu.Unlock()

	// 丢弃尚未被消费的旧配置
	select {
	case <-cw.updates:
	default:
	}
	cw.updates <- cfg
	log.Printf("[ConfigWatcher] Reloaded %s", cw.path)
}
