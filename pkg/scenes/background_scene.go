package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/layers"
	"github.com/decker502/starfield/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// BackgroundScene 一个背景组合：按固定 z 顺序合成若干独立图层
//
// 图层之间不共享可变状态；场景只负责挂载、按顺序绘制和卸载。
type BackgroundScene struct {
	composition config.Composition
	background  systems.Palette
	layers      []layers.Layer
}

// LayersFor 返回组合包含的图层（自底向上）
func LayersFor(composition config.Composition) []layers.Layer {
	switch composition {
	case config.CompositionNebula:
		return []layers.Layer{layers.NewNebulaLayer()}
	case config.CompositionStarfield:
		return []layers.Layer{layers.NewStarsLayer(), layers.NewConnectionsLayer()}
	default:
		return []layers.Layer{layers.NewNebulaLayer(), layers.NewStarsLayer(), layers.NewConnectionsLayer()}
	}
}

// NewBackgroundScene 创建并挂载一个背景组合
// 任一图层挂载失败时卸载已挂载的图层并返回错误
func NewBackgroundScene(composition config.Composition, host layers.Host) (*BackgroundScene, error) {
	if host.Config == nil {
		return nil, fmt.Errorf("background scene %s: host has no config", composition)
	}

	theme := host.Theme
	if !theme.Valid() {
		theme = config.ThemeDark
	}
	s := &BackgroundScene{
		composition: composition,
		background:  systems.NewPalette(host.Config.AnimationColor, theme),
	}

	for _, l := range LayersFor(composition) {
		if err := l.Mount(host); err != nil {
			s.Dispose()
			return nil, fmt.Errorf("failed to mount %s layer: %w", l.Name(), err)
		}
		s.layers = append(s.layers, l)
	}

	log.Printf("[BackgroundScene] %s mounted with %d layers (theme=%s)", composition, len(s.layers), theme)
	return s, nil
}

// Composition 返回场景的组合
func (s *BackgroundScene) Composition() config.Composition {
	return s.composition
}

// Layers 返回已挂载的图层
func (s *BackgroundScene) Layers() []layers.Layer {
	return s.layers
}

// Update 实现 game.Scene；图层由各自的 tick 源推进，这里无事可做
func (s *BackgroundScene) Update(deltaTime float64) {}

// Draw 实现 game.Scene：先铺主题底色，再自底向上合成各图层
func (s *BackgroundScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background.Background())
	for _, l := range s.layers {
		l.Draw(screen)
	}
}

// Dispose 实现 game.Disposable：按挂载的逆序卸载
func (s *BackgroundScene) Dispose() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].Unmount()
	}
	s.layers = nil
}
