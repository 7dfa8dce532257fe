package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "background.yaml")
	if err := os.WriteFile(path, []byte("intensity: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(path)
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}
	cw.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cw.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cw.Stop()

	// 同目录下的其他文件不触发重新加载
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("intensity: 80\nspeed: fast\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-cw.Updates():
		if cfg.Intensity != 0.8 || cfg.Speed != SpeedFast {
			t.Errorf("reloaded config = %+v, want intensity 0.8 speed fast", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	if reloads, _ := cw.Stats(); reloads < 1 {
		t.Errorf("reloads = %d, want >= 1", reloads)
	}
}

func TestConfigWatcher_InvalidYAMLKeepsCurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "background.yaml")
	if err := os.WriteFile(path, []byte("intensity: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	cw.debounce = 20 * time.Millisecond
	if err := cw.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("intensity: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, errs := cw.Stats(); errs > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for reload error")
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case cfg := <-cw.Updates():
		t.Errorf("invalid YAML should not publish a config, got %+v", cfg)
	default:
	}

	cw.Stop()
	cw.Stop()
}
