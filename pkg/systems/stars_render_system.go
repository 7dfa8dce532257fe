package systems

import (
	"github.com/decker502/starfield/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// StarsRenderSystem 绘制星空图层：四角星 + 高闪烁值时的径向光晕
type StarsRenderSystem struct {
	batch ShapeBatch
}

// NewStarsRenderSystem 创建星空渲染系统
func NewStarsRenderSystem() *StarsRenderSystem {
	return &StarsRenderSystem{}
}

// Draw 绘制所有星星（画布先清空，图层自身再以 screen 模式合成到场景）
func (r *StarsRenderSystem) Draw(dst *ebiten.Image, s *StarsState, pal Palette, intensity float64) {
	dst.Clear()

	var identity ebiten.GeoM
	r.batch.Reset()
	for i := range s.Stars {
		star := &s.Stars[i]
		tw := Twinkle(star)
		alpha := star.Opacity * (0.4 + 0.6*tw)
		clr := pal.Color(pal.BaseHue, 0.5+0.3*tw, 0.75+0.2*tw, alpha)

		// 内外半径随闪烁脉动
		outer := star.Size * (2 + 1.5*tw)
		inner := star.Size * (0.5 + 0.3*tw)

		if tw > config.StarTwinkleHaloThreshold {
			halo := Fade(clr, 0.4*intensity)
			DrawGlow(dst, star.X, star.Y, outer*2.5, halo, identity, BlendSourceOver)
		}
		pts := StarPolygon(star.X, star.Y, outer, inner, config.StarPoints, star.Phase*0.1)
		r.batch.AddPolygon(pts, star.X, star.Y, clr)
	}
	r.batch.Flush(dst, identity, BlendSourceOver)
}
