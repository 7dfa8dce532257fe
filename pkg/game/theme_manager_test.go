package game

import (
	"os"
	"testing"

	"github.com/decker502/starfield/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// TestNewThemeManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewThemeManagerNilGdata(t *testing.T) {
	t.Setenv(PrefersColorSchemeEnv, "")

	tm := NewThemeManager(nil)
	if tm.Theme() != config.ThemeDark {
		t.Errorf("default theme = %q, want dark", tm.Theme())
	}

	if err := tm.SetTheme(config.ThemeLight); err != nil {
		t.Fatalf("SetTheme() error in degraded mode: %v", err)
	}
	if tm.Theme() != config.ThemeLight {
		t.Errorf("Theme() = %q, want light", tm.Theme())
	}
}

// TestThemeManagerSystemPreference 测试系统偏好回退
func TestThemeManagerSystemPreference(t *testing.T) {
	t.Setenv(PrefersColorSchemeEnv, "Light")

	tm := NewThemeManager(nil)
	if tm.Theme() != config.ThemeLight {
		t.Errorf("Theme() = %q, want light from system preference", tm.Theme())
	}
	if got := tm.Resolve(config.ThemeDark); got != config.ThemeDark {
		t.Errorf("Resolve(dark) = %q, explicit value must win", got)
	}
	if got := tm.Resolve(config.ThemeAuto); got != config.ThemeLight {
		t.Errorf("Resolve(auto) = %q, want light", got)
	}
}

// TestThemeManagerSubscribe 测试订阅/通知
func TestThemeManagerSubscribe(t *testing.T) {
	t.Setenv(PrefersColorSchemeEnv, "")
	tm := NewThemeManager(nil)

	var events []config.Theme
	unsubscribe := tm.Subscribe(func(theme config.Theme) {
		events = append(events, theme)
	})

	// dark -> light
	tm.Toggle()
	// 未变化，不通知
	_ = tm.SetTheme(config.ThemeLight)
	// light -> dark
	tm.Toggle()

	if len(events) != 2 || events[0] != config.ThemeLight || events[1] != config.ThemeDark {
		t.Fatalf("events = %v, want [light dark]", events)
	}

	if err := tm.SetTheme("sepia"); err == nil {
		t.Error("SetTheme(sepia) should fail")
	}

	unsubscribe()
	tm.Toggle()
	if len(events) != 2 {
		t.Errorf("notified after unsubscribe: %v", events)
	}
}

// TestThemeManagerPersistence 测试主题持久化
func TestThemeManagerPersistence(t *testing.T) {
	// 使用临时目录创建 gdata manager
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)
	t.Setenv(PrefersColorSchemeEnv, "")

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "test_starfield_theme",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	tm1 := NewThemeManager(gdataManager)
	if err := tm1.SetTheme(config.ThemeLight); err != nil {
		t.Fatalf("SetTheme() error: %v", err)
	}

	tm2 := NewThemeManager(gdataManager)
	if tm2.Theme() != config.ThemeLight {
		t.Errorf("reloaded theme = %q, want light", tm2.Theme())
	}
}
