package layers

import (
	"log"
	"time"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// NebulaLayer 深度模拟的星云粒子图层
type NebulaLayer struct {
	canvasLayer

	palette  systems.Palette
	profile  config.QualityProfile
	state    *systems.NebulaState
	renderer *systems.NebulaRenderSystem
}

// NewNebulaLayer 创建星云图层
func NewNebulaLayer() *NebulaLayer {
	l := &NebulaLayer{renderer: systems.NewNebulaRenderSystem()}
	l.canvasLayer = canvasLayer{
		name:   "nebula",
		blend:  systems.BlendSourceOver,
		resize: l.reseed,
		step:   l.advance,
		render: l.paint,
	}
	return l
}

// Mount 实现 Layer：设备分级只在挂载时计算一次
func (l *NebulaLayer) Mount(h Host) error {
	if err := l.checkMountable(h); err != nil {
		return err
	}
	cfg := h.Config
	l.palette = systems.NewPalette(cfg.AnimationColor, h.resolveTheme())
	l.profile = config.ProfileFor(h.Caps)
	l.state = systems.NewNebulaState(systems.NebulaOptions{
		BaseHue:         l.palette.BaseHue,
		Intensity:       cfg.Intensity,
		ParticleCount:   cfg.ParticleCount,
		SpeedMultiplier: cfg.SpeedMultiplier,
		Profile:         l.profile,
	}, h.random())

	log.Printf("[NebulaLayer] tier=%s fps=%d particles=%d theme=%s",
		l.profile.Tier, l.profile.TargetFPS, l.profile.ParticleCountFor(cfg.ParticleCount), l.palette.Theme)
	return l.mount(h)
}

// State 返回模拟状态（未挂载时为 nil）
func (l *NebulaLayer) State() *systems.NebulaState {
	return l.state
}

// Profile 返回挂载时选定的质量档位
func (l *NebulaLayer) Profile() config.QualityProfile {
	return l.profile
}

func (l *NebulaLayer) reseed(width, height float64) bool {
	return l.state.Resize(width, height)
}

func (l *NebulaLayer) advance(now time.Duration) bool {
	return l.state.Step(now)
}

func (l *NebulaLayer) paint(canvas *ebiten.Image) {
	l.renderer.Draw(canvas, l.state, l.palette)
}
