// Package app 提供背景渲染器的应用包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/device"
	"github.com/decker502/starfield/pkg/game"
	"github.com/decker502/starfield/pkg/layers"
	"github.com/decker502/starfield/pkg/scenes"
	"github.com/decker502/starfield/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "starfield"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的配置文件；为空时使用嵌入的默认配置（不监听）
	ConfigPath string
	// Override 在文件配置之上应用命令行参数（每次加载/热重载后都会调用）
	Override func(cfg *config.BackgroundConfig)
	// UserAgent 模拟的 UA 字符串，参与设备分级
	UserAgent string
	// MobileEmulate 强制按移动设备分级
	MobileEmulate bool
	// Seed 随机种子；0 表示按当前时间播种
	Seed int64
	// Overlay 启动时显示调试信息
	Overlay bool
}

// App 是背景渲染器的应用包装器，实现 ebiten.Game 接口
type App struct {
	appConfig Config
	cfg       *config.BackgroundConfig

	sceneManager *game.SceneManager
	clock        *game.FrameClock
	viewport     *game.Viewport
	themes       *game.ThemeManager
	watcher      *config.ConfigWatcher
	rng          *rand.Rand

	ticks   int64
	loaded  bool
	overlay bool
	quit    bool

	unsubscribeTheme func()
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bgConfig, err := loadConfig(cfg)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		appConfig:    cfg,
		cfg:          bgConfig,
		sceneManager: game.NewSceneManager(),
		clock:        game.NewFrameClock(),
		viewport:     game.NewViewport(0, 0),
		rng:          rand.New(rand.NewSource(seed)),
		overlay:      cfg.Overlay,
	}

	// gdata 打开失败时降级为仅内存的主题管理
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open gdata storage: %v (theme will not persist)", err)
		gdataManager = nil
	}
	a.themes = game.NewThemeManager(gdataManager)
	a.unsubscribeTheme = a.themes.Subscribe(func(theme config.Theme) {
		log.Printf("[App] Theme changed to %s, reloading scene", theme)
		a.sceneManager.Reload()
	})

	a.sceneManager.SetSceneFactory(a.newScene)

	if cfg.ConfigPath != "" {
		a.startWatcher(cfg.ConfigPath)
	}

	log.Printf("[App] Initialized: composition=%s theme=%s seed=%d", bgConfig.Composition, a.currentTheme(), seed)
	return a, nil
}

// loadConfig 加载文件配置并应用命令行覆盖
func loadConfig(cfg Config) (*config.BackgroundConfig, error) {
	var (
		bgConfig *config.BackgroundConfig
		err      error
	)
	if cfg.ConfigPath != "" {
		bgConfig, err = config.LoadBackgroundConfig(cfg.ConfigPath)
	} else {
		bgConfig, err = config.LoadEmbeddedBackgroundConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	applyOverride(cfg, bgConfig)
	return bgConfig, nil
}

func applyOverride(cfg Config, bgConfig *config.BackgroundConfig) {
	if cfg.Override == nil {
		return
	}
	cfg.Override(bgConfig)
	bgConfig.Normalize()
}

func (a *App) startWatcher(path string) {
	watcher, err := config.NewConfigWatcher(path)
	if err != nil {
		log.Printf("[App] Warning: config hot reload disabled: %v", err)
		return
	}
	if err := watcher.Start(context.Background()); err != nil {
		log.Printf("[App] Warning: config hot reload disabled: %v", err)
		watcher.Stop()
		return
	}
	a.watcher = watcher
}

// currentTheme 配置中的明确主题优先，否则使用主题管理器的值
func (a *App) currentTheme() config.Theme {
	return a.themes.Resolve(a.cfg.Theme)
}

// host 为一次挂载构建宿主依赖；设备能力在每次挂载时重新探测
func (a *App) host() layers.Host {
	width, _ := a.viewport.Size()

	return layers.Host{
		NewTicks: func() game.TickSource { return a.clock.NewSource() },
		Viewport: a.viewport,
		Config:   a.cfg.Clone(),
		Theme:    a.currentTheme(),
		Caps:     device.Detect(width, a.appConfig.UserAgent, a.appConfig.MobileEmulate),
		Rand:     a.rng,
	}
}

// newScene 场景工厂：挂载失败时背景缺失，但不影响应用运行
func (a *App) newScene(composition config.Composition) game.Scene {
	scene, err := scenes.NewBackgroundScene(composition, a.host())
	if err != nil {
		log.Printf("[App] Error: %v", err)
		return nil
	}
	return scene
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	a.applyConfigUpdates()

	// 等到 Layout 给出有效尺寸再挂载
	if !a.loaded {
		if w, h := a.viewport.Size(); w > 0 && h > 0 {
			a.sceneManager.LoadComposition(a.cfg.Composition)
			a.loaded = true
		}
	}

	a.handleInput()

	// 帧时间由 tick 数推导，与 Ebitengine 的固定 TPS 保持一致
	a.ticks++
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	a.clock.Advance(time.Duration(a.ticks) * time.Second / time.Duration(tps))
	a.sceneManager.Update(1.0 / float64(tps))
	return nil
}

// applyConfigUpdates 热重载视为属性变化：完全卸载并重新播种
func (a *App) applyConfigUpdates() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		applyOverride(a.appConfig, cfg)
		composition := a.sceneManager.CurrentComposition()
		a.cfg = cfg
		log.Printf("[App] Config reloaded: color=%s intensity=%.2f speed=%s", cfg.AnimationColor, cfg.Intensity, cfg.Speed)
		if a.loaded {
			if composition == "" {
				composition = cfg.Composition
			}
			a.sceneManager.LoadComposition(composition)
		}
	default:
	}
}

func (a *App) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		a.quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		a.toggleTheme()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		log.Printf("[App] Switched background to %s", a.sceneManager.Cycle())
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		a.overlay = !a.overlay
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// 触屏设备没有键盘：单指点按切换背景，双指点按切换主题
	if !a.loaded {
		return
	}
	switch utils.JustTapped() {
	case utils.TapSingle:
		if utils.IsTouchDevice() {
			log.Printf("[App] Switched background to %s", a.sceneManager.Cycle())
		}
	case utils.TapMulti:
		a.toggleTheme()
	}
}

// toggleTheme 手动切换后不再使用配置里的明确主题
func (a *App) toggleTheme() {
	next := config.ThemeLight
	if a.currentTheme() == config.ThemeLight {
		next = config.ThemeDark
	}
	a.cfg.Theme = config.ThemeAuto

	changed := a.themes.Theme() != next
	if err := a.themes.SetTheme(next); err != nil {
		log.Printf("[App] Warning: %v", err)
		return
	}
	// 主题管理器的值没变（之前被明确配置覆盖），不会触发通知
	if !changed {
		a.sceneManager.Reload()
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	if a.overlay {
		ebitenutil.DebugPrint(screen, a.debugText())
	}
}

func (a *App) debugText() string {
	w, h := a.viewport.Size()
	text := fmt.Sprintf("%s | %s | %dx%d | FPS %.0f TPS %.0f\n[B] background  [T] theme  [D] overlay  [Esc] quit",
		a.sceneManager.CurrentComposition(), a.currentTheme(), w, h, ebiten.ActualFPS(), ebiten.ActualTPS())
	if scene, ok := a.sceneManager.GetCurrentScene().(*scenes.BackgroundScene); ok {
		for _, l := range scene.Layers() {
			if l.Halted() {
				text += fmt.Sprintf("\n%s: halted", l.Name())
			}
		}
	}
	return text
}

// Layout 视口尺寸即窗口尺寸，变化时通知所有图层
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.viewport.Set(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 卸载场景、停止配置监听
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.unsubscribeTheme != nil {
		a.unsubscribeTheme()
		a.unsubscribeTheme = nil
	}
	a.sceneManager.Close()
	log.Printf("[App] Closed")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.appConfig.Verbose
}
