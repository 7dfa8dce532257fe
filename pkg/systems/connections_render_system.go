package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ConnectionsRenderSystem 绘制节点和节点之间的连线（星座效果）
type ConnectionsRenderSystem struct {
	edges []Edge // 复用，避免每帧分配
}

// NewConnectionsRenderSystem 创建连线渲染系统
func NewConnectionsRenderSystem() *ConnectionsRenderSystem {
	return &ConnectionsRenderSystem{}
}

// Draw 先画连线再画节点
func (r *ConnectionsRenderSystem) Draw(dst *ebiten.Image, s *ConnectionsState, pal Palette) {
	dst.Clear()

	lineColor := pal.Color(pal.BaseHue, 0.7, 0.6, ConnectionAlpha(s.Intensity()))
	r.edges = s.Edges(r.edges)
	for _, e := range r.edges {
		a, b := &s.Nodes[e.A], &s.Nodes[e.B]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, lineColor, true)
	}

	nodeColor := pal.Color(pal.BaseHue, 0.8, 0.65, 0.5+0.5*s.Intensity())
	for i := range s.Nodes {
		n := &s.Nodes[i]
		vector.DrawFilledCircle(dst, float32(n.X), float32(n.Y), float32(n.Radius), nodeColor, true)
	}
}
