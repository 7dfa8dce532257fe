package game

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/decker502/starfield/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ThemeChangeFunc 主题变化回调，参数为新主题
type ThemeChangeFunc func(theme config.Theme)

// themeRecord 持久化的主题记录
type themeRecord struct {
	Theme config.Theme `yaml:"theme"`
}

// 存储路径常量
const (
	themeObject   = "theme"
	themeProperty = "current"
)

// PrefersColorSchemeEnv 系统主题偏好环境变量（light / dark）
const PrefersColorSchemeEnv = "STARFIELD_PREFERS_COLOR_SCHEME"

// ThemeManager 主题管理器
//
// 在应用根部创建一次，显式传递给需要的组件：
//   - Theme() 读取当前主题
//   - SetTheme() 持久化到 gdata 并通知订阅者
//   - Subscribe() 订阅主题变化
type ThemeManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	theme        config.Theme
	nextID       int
	subscribers  map[int]ThemeChangeFunc
}

// NewThemeManager 创建主题管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 初始主题：持久化值 → 系统偏好 → dark
func NewThemeManager(gdataManager *gdata.Manager) *ThemeManager {
	tm := &ThemeManager{
		gdataManager: gdataManager,
		subscribers:  make(map[int]ThemeChangeFunc),
	}

	theme, err := tm.load()
	if err != nil {
		// 加载失败不是致命错误
		log.Printf("[ThemeManager] Warning: Failed to load theme: %v (using system preference)", err)
	}
	if !theme.Valid() {
		theme = SystemThemePreference()
	}
	tm.theme = theme
	return tm
}

// SystemThemePreference 返回系统主题偏好，无偏好时为 dark
func SystemThemePreference() config.Theme {
	pref := config.Theme(strings.ToLower(strings.TrimSpace(os.Getenv(PrefersColorSchemeEnv))))
	if pref.Valid() {
		return pref
	}
	return config.ThemeDark
}

// load 从 gdata 读取持久化的主题
func (tm *ThemeManager) load() (config.Theme, error) {
	if tm.gdataManager == nil {
		return config.ThemeAuto, nil
	}
	if !tm.gdataManager.ObjectPropExists(themeObject, themeProperty) {
		return config.ThemeAuto, nil
	}

	data, err := tm.gdataManager.LoadObjectProp(themeObject, themeProperty)
	if err != nil {
		return config.ThemeAuto, fmt.Errorf("failed to load theme: %w", err)
	}

	var record themeRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return config.ThemeAuto, fmt.Errorf("failed to unmarshal theme: %w", err)
	}
	return record.Theme, nil
}

// save 持久化当前主题
func (tm *ThemeManager) save() error {
	if tm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(themeRecord{Theme: tm.theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	if err := tm.gdataManager.SaveObjectProp(themeObject, themeProperty, data); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Theme 返回当前主题
func (tm *ThemeManager) Theme() config.Theme {
	return tm.theme
}

// Resolve 解析图层使用的主题：显式值优先，否则使用当前主题
func (tm *ThemeManager) Resolve(explicit config.Theme) config.Theme {
	if explicit.Valid() {
		return explicit
	}
	return tm.theme
}

// SetTheme 设置主题，持久化并通知订阅者
//
// 非法主题返回错误；与当前主题相同时不通知
// 持久化失败只记录警告，内存中的主题与通知仍然生效
func (tm *ThemeManager) SetTheme(theme config.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	if theme == tm.theme {
		return nil
	}
	tm.theme = theme

	if err := tm.save(); err != nil {
		log.Printf("[ThemeManager] Warning: %v", err)
	}
	log.Printf("[ThemeManager] Theme changed to %s", theme)

	tm.notify(theme)
	return nil
}

// Toggle 在 light/dark 之间切换
func (tm *ThemeManager) Toggle() config.Theme {
	next := config.ThemeDark
	if tm.theme == config.ThemeDark {
		next = config.ThemeLight
	}
	_ = tm.SetTheme(next)
	return tm.theme
}

// Subscribe 订阅主题变化，返回取消订阅函数
func (tm *ThemeManager) Subscribe(fn ThemeChangeFunc) (unsubscribe func()) {
	id := tm.nextID
	tm.nextID++
	tm.subscribers[id] = fn
	return func() {
		delete(tm.subscribers, id)
	}
}

func (tm *ThemeManager) notify(theme config.Theme) {
	for id := 0; id < tm.nextID; id++ {
		if fn, ok := tm.subscribers[id]; ok {
			fn(theme)
		}
	}
}
