package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/config"
)

// NodeCount 连线图层节点数量：floor(15 × intensity)
func NodeCount(intensity float64) int {
	return int(math.Floor(config.ConnectionBaseNodes * config.NormalizeIntensity(intensity)))
}

// ConnectionAlpha 连线透明度：0.3 × intensity
func ConnectionAlpha(intensity float64) float64 {
	return config.ConnectionLineAlpha * config.NormalizeIntensity(intensity)
}

// Edge 两个节点之间的连线（每帧实时计算，不保存）
type Edge struct {
	A, B int
}

// ConnectionsState 连线图层的模拟状态
type ConnectionsState struct {
	rng       *rand.Rand
	intensity float64
	speed     float64

	Width, Height float64
	Nodes         []components.Node
}

// NewConnectionsState 创建连线状态
func NewConnectionsState(intensity float64, speed config.Speed, rng *rand.Rand) *ConnectionsState {
	return &ConnectionsState{
		rng:       rng,
		intensity: config.NormalizeIntensity(intensity),
		speed:     speed.Multiplier(),
	}
}

// Intensity 返回归一化后的强度
func (s *ConnectionsState) Intensity() float64 {
	return s.intensity
}

// Resize 更新尺寸并重新播种节点
func (s *ConnectionsState) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Width, s.Height = width, height

	n := NodeCount(s.intensity)
	s.Nodes = make([]components.Node, n)
	for i := range s.Nodes {
		s.Nodes[i] = components.Node{
			X:      s.rng.Float64() * width,
			Y:      s.rng.Float64() * height,
			VX:     (s.rng.Float64() - 0.5) * s.speed,
			VY:     (s.rng.Float64() - 0.5) * s.speed,
			Radius: 1 + s.rng.Float64()*2,
		}
	}
	return true
}

// Step 推进一帧，节点碰到边缘时速度分量取反
func (s *ConnectionsState) Step() {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		n.X += n.VX
		n.Y += n.VY
		if n.X < 0 || n.X > s.Width {
			n.VX = -n.VX
		}
		if n.Y < 0 || n.Y > s.Height {
			n.VY = -n.VY
		}
	}
}

// Edges 返回所有距离小于 ConnectionDistance 的节点对（O(n²)，节点数很少）
func (s *ConnectionsState) Edges(dst []Edge) []Edge {
	dst = dst[:0]
	for i := 0; i < len(s.Nodes); i++ {
		for j := i + 1; j < len(s.Nodes); j++ {
			a, b := &s.Nodes[i], &s.Nodes[j]
			if math.Hypot(a.X-b.X, a.Y-b.Y) < config.ConnectionDistance {
				dst = append(dst, Edge{A: i, B: j})
			}
		}
	}
	return dst
}
