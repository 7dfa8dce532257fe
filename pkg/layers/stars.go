package layers

import (
	"time"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// StarsLayer 闪烁四角星图层，以 screen 模式合成（只提亮下层）
type StarsLayer struct {
	canvasLayer

	palette   systems.Palette
	intensity float64
	state     *systems.StarsState
	renderer  *systems.StarsRenderSystem
}

// NewStarsLayer 创建星空图层
func NewStarsLayer() *StarsLayer {
	l := &StarsLayer{renderer: systems.NewStarsRenderSystem()}
	l.canvasLayer = canvasLayer{
		name:   "stars",
		blend:  systems.BlendScreen,
		resize: l.reseed,
		step:   l.advance,
		render: l.paint,
	}
	return l
}

// Mount 实现 Layer
func (l *StarsLayer) Mount(h Host) error {
	if err := l.checkMountable(h); err != nil {
		return err
	}
	l.palette = systems.NewPalette(h.Config.AnimationColor, h.resolveTheme())
	l.intensity = config.NormalizeIntensity(h.Config.Intensity)
	l.state = systems.NewStarsState(l.intensity, h.Config.Speed, h.random())
	return l.mount(h)
}

// State 返回模拟状态
func (l *StarsLayer) State() *systems.StarsState {
	return l.state
}

func (l *StarsLayer) reseed(width, height float64) bool {
	return l.state.Resize(width, height)
}

func (l *StarsLayer) advance(time.Duration) bool {
	l.state.Step()
	return true
}

func (l *StarsLayer) paint(canvas *ebiten.Image) {
	l.renderer.Draw(canvas, l.state, l.palette, l.intensity)
}
