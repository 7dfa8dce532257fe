package layers

import (
	"time"

	"github.com/decker502/starfield/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// ConnectionsLayer 节点 + 邻近连线（星座效果）
type ConnectionsLayer struct {
	canvasLayer

	palette  systems.Palette
	state    *systems.ConnectionsState
	renderer *systems.ConnectionsRenderSystem
}

// NewConnectionsLayer 创建连线图层
func NewConnectionsLayer() *ConnectionsLayer {
	l := &ConnectionsLayer{renderer: systems.NewConnectionsRenderSystem()}
	l.canvasLayer = canvasLayer{
		name:   "connections",
		blend:  systems.BlendSourceOver,
		resize: l.reseed,
		step:   l.advance,
		render: l.paint,
	}
	return l
}

// Mount 实现 Layer
func (l *ConnectionsLayer) Mount(h Host) error {
	if err := l.checkMountable(h); err != nil {
		return err
	}
	l.palette = systems.NewPalette(h.Config.AnimationColor, h.resolveTheme())
	l.state = systems.NewConnectionsState(h.Config.Intensity, h.Config.Speed, h.random())
	return l.mount(h)
}

// State 返回模拟状态
func (l *ConnectionsLayer) State() *systems.ConnectionsState {
	return l.state
}

func (l *ConnectionsLayer) reseed(width, height float64) bool {
	return l.state.Resize(width, height)
}

func (l *ConnectionsLayer) advance(time.Duration) bool {
	l.state.Step()
	return true
}

func (l *ConnectionsLayer) paint(canvas *ebiten.Image) {
	l.renderer.Draw(canvas, l.state, l.palette)
}
