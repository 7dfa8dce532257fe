package systems

import (
	"math"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/ecs"
	"github.com/decker502/starfield/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 粒子绘制尺寸 = Size × DepthScale(z) × particleSizeFactor
const particleSizeFactor = 4.0

// NebulaRenderSystem 把 NebulaState 绘制到星云图层的画布上
// 只读取状态，不修改任何模拟数据
type NebulaRenderSystem struct {
	batch ShapeBatch
}

// NewNebulaRenderSystem 创建星云渲染系统
func NewNebulaRenderSystem() *NebulaRenderSystem {
	return &NebulaRenderSystem{}
}

// CameraGeoM 以画布中心为原点的缩放变换
func CameraGeoM(width, height, zoom float64) ebiten.GeoM {
	var g ebiten.GeoM
	if zoom == 1 {
		return g
	}
	g.Translate(-width/2, -height/2)
	g.Scale(zoom, zoom)
	g.Translate(width/2, height/2)
	return g
}

// Draw 绘制一帧：环境渐变 → 静态星星 → 流星 → 云团 → 粒子
func (r *NebulaRenderSystem) Draw(dst *ebiten.Image, s *NebulaState, pal Palette) {
	dst.Clear()
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	r.drawAmbient(dst, s, pal)

	cam := CameraGeoM(s.Width, s.Height, s.Zoom)
	r.drawStaticStars(dst, s, pal, cam)
	if s.Options().Profile.ShootingStars {
		r.drawShootingStars(dst, s, pal, cam)
	}
	r.drawClouds(dst, s, pal, cam)
	r.drawParticles(dst, s, pal, cam)
}

// drawAmbient 主题相关的径向环境渐变
func (r *NebulaRenderSystem) drawAmbient(dst *ebiten.Image, s *NebulaState, pal Palette) {
	var identity ebiten.GeoM
	radius := math.Hypot(s.Width, s.Height) * 0.6
	DrawGlow(dst, s.Width/2, s.Height/2, radius, pal.AmbientInner(), identity, BlendSourceOver)
	DrawGlow(dst, s.Width*0.3, s.Height*0.7, radius*0.7, pal.AmbientOuter(), identity, BlendSourceOver)
}

func (r *NebulaRenderSystem) drawStaticStars(dst *ebiten.Image, s *NebulaState, pal Palette, cam ebiten.GeoM) {
	blend := pal.BackdropBlend()
	for i := range s.StaticStars {
		star := &s.StaticStars[i]
		b := StaticStarBrightness(star, s.Time)
		clr := pal.Color(pal.BaseHue+star.HueOffset, 0.3, 0.85, b)
		DrawGlow(dst, star.X, star.Y, star.Size*2.5, clr, cam, blend)
	}
}

func (r *NebulaRenderSystem) drawShootingStars(dst *ebiten.Image, s *NebulaState, pal Palette, cam ebiten.GeoM) {
	em := s.ShootingStars
	glow := s.Options().Profile.Glow
	for _, id := range ecs.GetEntitiesWith1[*components.ShootingStarComponent](em) {
		star, ok := ecs.GetComponent[*components.ShootingStarComponent](em, id)
		if !ok {
			continue
		}
		// 前半程几乎不变暗，临近消失时快速淡出
		life := utils.EaseOutCubic(float64(star.Life) / float64(star.MaxLife))

		// 拖尾：越旧越淡越细
		n := len(star.Trail)
		for i := 1; i < n; i++ {
			t := float64(i) / float64(n)
			x0, y0 := cam.Apply(star.Trail[i-1][0], star.Trail[i-1][1])
			x1, y1 := cam.Apply(star.Trail[i][0], star.Trail[i][1])
			clr := pal.Color(star.Hue, 0.6, 0.85, t*life*0.8)
			vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(star.Size*t), clr, true)
		}

		head := pal.Color(star.Hue, 0.4, 0.95, life)
		if glow {
			DrawGlow(dst, star.X, star.Y, star.Size*6, Fade(head, 0.6), cam, BlendLighter)
		}
		hx, hy := cam.Apply(star.X, star.Y)
		vector.DrawFilledCircle(dst, float32(hx), float32(hy), float32(star.Size), head, true)
	}
}

func (r *NebulaRenderSystem) drawClouds(dst *ebiten.Image, s *NebulaState, pal Palette, cam ebiten.GeoM) {
	blend := pal.BackdropBlend()
	for _, c := range s.Clouds {
		radius := CloudRadius(c)
		for l := 0; l < c.Layers; l++ {
			// 同心"团块"：每层绕中心错开一点，随旋转缓慢转动
			frac := float64(l) / float64(c.Layers)
			a := c.Rotation + float64(l)*2*math.Pi/float64(c.Layers)
			off := radius * 0.25 * frac
			x := c.X + math.Cos(a)*off
			y := c.Y + math.Sin(a)*off
			clr := pal.Color(c.Hue+float64(l)*5, 0.65, 0.5, c.Density*(1-frac*0.5)*0.5)
			DrawGlow(dst, x, y, radius*(1-frac*0.4), clr, cam, blend)
		}
	}
}

func (r *NebulaRenderSystem) drawParticles(dst *ebiten.Image, s *NebulaState, pal Palette, cam ebiten.GeoM) {
	prof := s.Options().Profile
	intensity := s.Options().Intensity

	r.batch.Reset()
	for _, p := range s.Particles {
		scale := DepthScale(p.Z)
		size := p.Size * scale * particleSizeFactor
		pulse := 1 + math.Sin(p.Phase)*0.3*p.Energy
		alpha := ParticleAlpha(p) * (0.4 + 0.6*intensity)
		clr := pal.Color(p.Hue, p.Saturation, p.Brightness, alpha)

		if prof.ParticleTrails {
			for i := 1; i < len(p.Trail); i++ {
				a, b := p.Trail[i-1], p.Trail[i]
				x0, y0 := cam.Apply(a.X, a.Y)
				x1, y1 := cam.Apply(b.X, b.Y)
				tc := Fade(clr, b.Alpha*0.5)
				vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(size*0.5), tc, true)
			}
		}

		if !prof.SpikyParticles {
			// 低端设备：两个纯色圆
			x, y := cam.Apply(p.X, p.Y)
			vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*pulse), Fade(clr, 0.4), false)
			vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*0.5), clr, false)
			continue
		}

		if prof.Glow {
			DrawGlow(dst, p.X, p.Y, size*pulse*3, Fade(clr, 0.35), cam, BlendLighter)
		}
		rot := p.Phase * 0.2
		outer := StarPolygon(p.X, p.Y, size*pulse*1.6, size*0.5, 5, rot)
		r.batch.AddPolygon(outer, p.X, p.Y, Fade(clr, 0.6))
		core := pal.Color(p.Hue, p.Saturation*0.5, math.Min(1, p.Brightness+0.3), alpha)
		inner := StarPolygon(p.X, p.Y, size*0.8, size*0.3, 5, rot)
		r.batch.AddPolygon(inner, p.X, p.Y, core)
	}
	r.batch.Flush(dst, cam, BlendSourceOver)
}

// ParticleAlpha 寿命淡入淡出：出生和临死的 10% 寿命内线性过渡
func ParticleAlpha(p *components.Particle) float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	t := float64(p.Life) / float64(p.MaxLife)
	switch {
	case t > 0.9:
		return (1 - t) * 10
	case t < 0.1:
		return t * 10
	default:
		return 1
	}
}
