package layers

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/device"
	"github.com/decker502/starfield/pkg/game"
	"github.com/decker502/starfield/pkg/systems"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Layer 一个独立动画的背景图层
//
// 每个图层拥有自己的画布、tick 源和模拟状态，图层之间不共享任何可变数据。
type Layer interface {
	Name() string
	// Mount 按视口尺寸播种并开始调度
	Mount(host Host) error
	// Unmount 取消调度、注销 resize 监听、释放画布；幂等
	Unmount()
	// Draw 把图层画布按自身混合模式合成到 screen
	Draw(screen *ebiten.Image)
	// Halted 帧内发生致命错误后图层停止调度
	Halted() bool
}

// Host 图层挂载时从宿主获得的只读依赖
type Host struct {
	// NewTicks 为图层创建独立的 tick 源
	NewTicks func() game.TickSource
	Viewport *game.Viewport
	Config   *config.BackgroundConfig
	// Theme 已解析的主题；为空时回退到系统偏好
	Theme config.Theme
	Caps  device.Capabilities
	Rand  *rand.Rand
}

// resolveTheme 返回明确的 light/dark 主题
func (h Host) resolveTheme() config.Theme {
	if h.Theme.Valid() {
		return h.Theme
	}
	return game.SystemThemePreference()
}

// random 为图层派生独立的随机源（图层之间不共享 *rand.Rand）
// 宿主未注入随机源时按当前时间播种
func (h Host) random() *rand.Rand {
	if h.Rand != nil {
		return rand.New(rand.NewSource(h.Rand.Int63()))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (h Host) validate() error {
	if h.NewTicks == nil {
		return fmt.Errorf("host has no tick source factory")
	}
	if h.Viewport == nil {
		return fmt.Errorf("host has no viewport")
	}
	if h.Config == nil {
		return fmt.Errorf("host has no config")
	}
	return nil
}

// canvasLayer 三个图层共用的挂载生命周期
//
//	uninitialized → sized+seeded → animating → torn down
//
// 每次 resize 回到 sized+seeded。step/render 中的 panic 会被捕获并记录，
// 之后该图层停止调度（不自动重启）。
type canvasLayer struct {
	name  string
	blend systems.BlendMode

	// 由具体图层提供
	resize func(width, height float64) bool
	step   func(now time.Duration) bool
	render func(canvas *ebiten.Image)

	id          uuid.UUID
	ticks       game.TickSource
	unsubscribe func()
	canvas      *ebiten.Image
	width       int
	height      int
	sized       bool
	dirty       bool
	mounted     bool
	halted      bool

	// renders 画布重画次数
	renders int
}

func (l *canvasLayer) Name() string {
	return l.name
}

func (l *canvasLayer) Halted() bool {
	return l.halted
}

// checkMountable 在具体图层改动任何字段之前调用：
// 已挂载的图层拒绝再次挂载，正在运行的状态保持不变
func (l *canvasLayer) checkMountable(h Host) error {
	if l.mounted {
		return fmt.Errorf("layer %s is already mounted", l.name)
	}
	return h.validate()
}

// mount 订阅视口尺寸并启动 tick 源
func (l *canvasLayer) mount(h Host) error {
	if l.mounted {
		return fmt.Errorf("layer %s is already mounted", l.name)
	}
	l.id = uuid.New()
	l.halted = false
	l.sized = false
	l.dirty = false
	l.mounted = true
	l.ticks = h.NewTicks()

	l.unsubscribe = h.Viewport.Subscribe(l.onResize)
	w, hh := h.Viewport.Size()
	l.onResize(w, hh)

	l.ticks.Start(l.onTick)
	log.Printf("[Layer] %s mounted (id=%s, %dx%d, blend=%s)", l.name, l.id, w, hh, l.blend)
	return nil
}

// Unmount 实现 Layer
func (l *canvasLayer) Unmount() {
	if !l.mounted {
		return
	}
	l.mounted = false
	l.ticks.Stop()
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	if l.canvas != nil {
		l.canvas.Deallocate()
		l.canvas = nil
	}
	log.Printf("[Layer] %s unmounted (id=%s)", l.name, l.id)
}

// onResize 尺寸为 0 时（布局尚未完成）跳过，等待下一次 resize
func (l *canvasLayer) onResize(width, height int) {
	if l.halted {
		return
	}
	if width <= 0 || height <= 0 {
		log.Printf("[Layer] %s resize ignored: %dx%d", l.name, width, height)
		return
	}
	defer l.recoverFrom("resize")

	if width != l.width || height != l.height {
		if l.canvas != nil {
			l.canvas.Deallocate()
			l.canvas = nil
		}
		l.width, l.height = width, height
	}
	if l.resize(float64(width), float64(height)) {
		l.sized = true
		l.dirty = true
	}
}

func (l *canvasLayer) onTick(now time.Duration) {
	if l.halted || !l.sized {
		return
	}
	defer l.recoverFrom("step")

	if l.step(now) {
		l.dirty = true
	}
}

// Draw 实现 Layer：只有绘制帧之后才重画画布，跳过的帧沿用上一帧画面
// 停止调度的图层不再重画，但继续合成最后一帧
func (l *canvasLayer) Draw(screen *ebiten.Image) {
	if !l.mounted || !l.sized {
		return
	}
	if !l.halted {
		l.refresh()
	}
	if l.canvas == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.Blend = l.blend.Ebiten()
	screen.DrawImage(l.canvas, op)
}

func (l *canvasLayer) refresh() {
	defer l.recoverFrom("draw")

	if l.canvas == nil {
		l.canvas = ebiten.NewImage(l.width, l.height)
		l.dirty = true
	}
	if l.dirty {
		l.render(l.canvas)
		l.dirty = false
		l.renders++
	}
}

// recoverFrom 捕获帧内 panic：记录日志并停止该图层的调度
func (l *canvasLayer) recoverFrom(phase string) {
	r := recover()
	if r == nil {
		return
	}
	log.Printf("[Layer] Error: %s (id=%s) %s failed: %v, halting layer", l.name, l.id, phase, r)
	l.halted = true
	if l.ticks != nil {
		l.ticks.Stop()
	}
}
