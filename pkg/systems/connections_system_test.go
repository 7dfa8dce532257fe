package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/config"
)

func TestNodeCount_MonotonicInIntensity(t *testing.T) {
	prev := -1
	for i := 0; i <= 100; i++ {
		intensity := float64(i) / 100
		n := NodeCount(intensity)
		if want := int(math.Floor(15 * intensity)); n != want {
			t.Errorf("NodeCount(%.2f) = %d, want %d", intensity, n, want)
		}
		if n < prev {
			t.Fatalf("NodeCount decreased at intensity %.2f", intensity)
		}
		prev = n
	}

	// 百分比形式的强度先归一化
	if NodeCount(55) != NodeCount(0.55) {
		t.Error("intensity 55 and 0.55 should give the same node count")
	}
}

func TestConnectionsState_SeedAndBounce(t *testing.T) {
	s := NewConnectionsState(1, config.SpeedFast, rand.New(rand.NewSource(3)))
	s.Resize(200, 100)

	if len(s.Nodes) != 15 {
		t.Fatalf("nodes = %d, want 15", len(s.Nodes))
	}
	for i, n := range s.Nodes {
		if math.Abs(n.VX) > 1 || math.Abs(n.VY) > 1 {
			t.Errorf("node %d velocity (%f, %f) exceeds the fast multiplier range", i, n.VX, n.VY)
		}
	}

	n := &s.Nodes[0]
	n.X, n.Y, n.VX, n.VY = 199.5, 50, 1, 0.25
	s.Step()
	if n.VX != -1 {
		t.Errorf("VX after hitting the right edge = %f, want -1", n.VX)
	}
	if n.VY != 0.25 {
		t.Errorf("VY changed without hitting an edge: %f", n.VY)
	}
}

func TestConnectionsState_ResizeReseeds(t *testing.T) {
	s := NewConnectionsState(0.55, config.SpeedSlow, rand.New(rand.NewSource(4)))
	s.Resize(800, 600)
	before := s.Nodes[0]

	s.Resize(1600, 1200)
	if len(s.Nodes) != 8 {
		t.Fatalf("nodes = %d, want 8", len(s.Nodes))
	}
	if s.Nodes[0] == before {
		t.Error("nodes should be re-seeded on resize")
	}
}

func TestConnectionsState_Edges(t *testing.T) {
	s := &ConnectionsState{
		Width: 500, Height: 500,
		Nodes: []components.Node{
			{X: 0, Y: 0},
			{X: 100, Y: 0},   // 距离 0 号 100
			{X: 100, Y: 119}, // 距离 1 号 119
			{X: 400, Y: 400}, // 孤立
		},
	}

	edges := s.Edges(nil)
	want := []Edge{{0, 1}, {1, 2}}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
}

func TestConnectionAlpha(t *testing.T) {
	if got := ConnectionAlpha(0.5); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("ConnectionAlpha(0.5) = %f, want 0.15", got)
	}
}
