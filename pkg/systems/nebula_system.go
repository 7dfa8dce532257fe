package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/ecs"
	"github.com/decker502/starfield/pkg/utils"
)

// NebulaOptions 星云模拟的只读参数
type NebulaOptions struct {
	BaseHue         float64
	Intensity       float64 // 0~1
	ParticleCount   int     // 基准粒子数（按质量档位缩放）
	SpeedMultiplier float64
	Profile         config.QualityProfile
}

// NebulaStats 模拟统计
type NebulaStats struct {
	DrawnFrames    int `yaml:"drawnFrames"`
	SkippedFrames  int `yaml:"skippedFrames"`
	Respawns       int `yaml:"respawns"`
	ZoomResets     int `yaml:"zoomResets"`
	ShootingSpawns int `yaml:"shootingSpawns"`
	Reseeds        int `yaml:"reseeds"`
}

// NebulaState 星云图层拥有的全部模拟状态
//
// 状态只属于创建它的图层，update/draw/reseed 都显式接收它，
// 不存在被多个闭包共享的可变数组。
type NebulaState struct {
	opts NebulaOptions
	rng  *rand.Rand

	Width, Height float64

	Particles   []*components.Particle
	Clouds      []*components.Cloud
	StaticStars []components.StaticStar

	// ShootingStars 流星实体
	ShootingStars *ecs.EntityManager

	Noise *NoiseField

	Zoom      float64
	ZoomPhase float64

	// Time 已绘制帧数，驱动所有正弦动画
	Time float64

	frameInterval time.Duration
	lastFrame     time.Duration
	started       bool

	Stats NebulaStats
}

// NewNebulaState 创建星云状态（尚未播种，等待 Resize 提供尺寸）
func NewNebulaState(opts NebulaOptions, rng *rand.Rand) *NebulaState {
	if opts.SpeedMultiplier <= 0 {
		opts.SpeedMultiplier = config.DefaultSpeedMultiplier
	}
	if opts.ParticleCount <= 0 {
		opts.ParticleCount = config.DefaultParticleCount
	}
	fps := opts.Profile.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	return &NebulaState{
		opts:          opts,
		rng:           rng,
		ShootingStars: ecs.NewEntityManager(),
		Zoom:          1,
		frameInterval: time.Second / time.Duration(fps),
	}
}

// Options 返回模拟参数
func (s *NebulaState) Options() NebulaOptions {
	return s.opts
}

// FrameInterval 返回目标帧间隔
func (s *NebulaState) FrameInterval() time.Duration {
	return s.frameInterval
}

// Seeded 是否已有粒子与云团
func (s *NebulaState) Seeded() bool {
	return len(s.Particles) > 0
}

// Resize 更新画布尺寸并完全重新播种粒子与云团（新对象）
// 静态星星只在第一次获得尺寸时创建，之后不再重建
// 任一尺寸为 0 时返回 false，等待下一次 resize
func (s *NebulaState) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Width, s.Height = width, height
	s.Noise = NewNoiseField(width, height, s.opts.Profile.NoiseCellSize, s.rng)
	s.seedParticles()
	s.seedClouds()
	s.ShootingStars.Clear()
	s.Zoom, s.ZoomPhase = 1, 0
	s.Stats.Reseeds++
	return true
}

// Step 帧率门控 + 一帧模拟
// 距离上次绘制帧不足目标帧间隔时整帧跳过（不修改任何粒子状态），返回 false
func (s *NebulaState) Step(now time.Duration) bool {
	if s.Width <= 0 || s.Height <= 0 {
		return false
	}

	if s.started {
		elapsed := now - s.lastFrame
		if elapsed < s.frameInterval {
			s.Stats.SkippedFrames++
			return false
		}
		// 保留余数，避免帧率系统性偏低
		s.lastFrame = now - elapsed%s.frameInterval
	} else {
		s.started = true
		s.lastFrame = now
	}

	s.advance()
	return true
}

// advance 无条件推进一帧
func (s *NebulaState) advance() {
	s.Time++
	s.Stats.DrawnFrames++

	s.updateZoom()
	s.ensureStaticStars()
	if s.opts.Profile.ShootingStars {
		s.updateShootingStars()
	}
	s.updateClouds()
	s.updateParticles()
}

// DepthScale 深度到尺寸缩放：max(0.1, 800/(800+z))
func DepthScale(z float64) float64 {
	return math.Max(config.DepthMinScale, config.DepthFocal/(config.DepthFocal+z))
}

// ---------- 缩放循环 ----------

func (s *NebulaState) updateZoom() {
	if !s.opts.Profile.Zoom {
		return
	}
	s.ZoomPhase += config.ZoomPhaseStep * s.opts.SpeedMultiplier
	s.Zoom = 1 + s.ZoomPhase*config.ZoomRate
	if s.Zoom > config.ZoomThreshold {
		s.Zoom = 1
		s.ZoomPhase = 0
		s.repositionAll()
		s.Stats.ZoomResets++
	}
}

// repositionAll 缩放复位时把所有粒子和云团放到新的随机位置（原对象复用）
func (s *NebulaState) repositionAll() {
	for _, p := range s.Particles {
		p.X = s.rng.Float64() * s.Width
		p.Y = s.rng.Float64() * s.Height
		p.Z = config.DepthMin + s.rng.Float64()*(config.DepthMax-config.DepthMin)
		p.Trail = p.Trail[:0]
	}
	for _, c := range s.Clouds {
		c.BaseX = s.rng.Float64() * s.Width
		c.BaseY = s.rng.Float64() * s.Height
		c.X, c.Y = c.BaseX, c.BaseY
	}
}

// ---------- 粒子 ----------

func (s *NebulaState) seedParticles() {
	n := s.opts.Profile.ParticleCountFor(s.opts.ParticleCount)
	s.Particles = make([]*components.Particle, n)
	for i := range s.Particles {
		p := &components.Particle{
			TrailMax: s.opts.Profile.TrailLength,
			Trail:    make([]components.TrailPoint, 0, s.opts.Profile.TrailLength),
		}
		s.spawnParticle(p)
		// 初始寿命错开，避免同一帧集中重生
		p.Life = 1 + s.rng.Intn(p.MaxLife)
		s.Particles[i] = p
	}
}

// spawnParticle 在新的随机位置/深度（重新）初始化粒子
func (s *NebulaState) spawnParticle(p *components.Particle) {
	speed := s.opts.SpeedMultiplier

	p.X = s.rng.Float64() * s.Width
	p.Y = s.rng.Float64() * s.Height
	p.Z = config.DepthMin + s.rng.Float64()*(config.DepthMax-config.DepthMin)
	p.VX = (s.rng.Float64() - 0.5) * 0.5 * speed
	p.VY = (s.rng.Float64() - 0.5) * 0.5 * speed
	p.VZ = (s.rng.Float64() - 0.5) * 2 * speed
	p.Size = 1 + s.rng.Float64()*2
	p.MaxLife = 200 + s.rng.Intn(300)
	p.Life = p.MaxLife
	p.Hue = ParticleHue(s.opts.BaseHue, s.rng)
	p.Saturation = 0.7 + s.rng.Float64()*0.3
	p.Brightness = 0.5 + s.rng.Float64()*0.3
	p.Phase = s.rng.Float64() * 2 * math.Pi
	p.Energy = 0.5 + s.rng.Float64()*0.5
	p.Trail = p.Trail[:0]
}

// ParticleHue 基础色相 ± HueJitter 内的随机色相（未归一化，范围 [base-30, base+30)）
func ParticleHue(baseHue float64, rng *rand.Rand) float64 {
	return baseHue - config.HueJitter + rng.Float64()*2*config.HueJitter
}

func (s *NebulaState) updateParticles() {
	speed := s.opts.SpeedMultiplier
	maxSpeed := config.ParticleMaxSpeed * speed

	for _, p := range s.Particles {
		// 噪声场推动
		angle := s.Noise.Angle(p.X, p.Y)
		p.VX = (p.VX + math.Cos(angle)*config.NoiseStrength*speed) * config.ParticleDamping
		p.VY = (p.VY + math.Sin(angle)*config.NoiseStrength*speed) * config.ParticleDamping
		if v := math.Hypot(p.VX, p.VY); v > maxSpeed {
			p.VX *= maxSpeed / v
			p.VY *= maxSpeed / v
		}

		p.X += p.VX
		p.Y += p.VY
		p.Z += p.VZ
		// 深度在合理范围内来回
		if p.Z < config.DepthMin*0.5 || p.Z > config.DepthMax*1.25 {
			p.VZ = -p.VZ
		}

		if s.wrapParticle(p) {
			p.Trail = p.Trail[:0]
		}

		p.Phase += 0.02 * speed
		p.PushTrail(0.7)

		p.Life--
		if p.Life <= 0 {
			s.spawnParticle(p)
			s.Stats.Respawns++
		}
	}
}

// wrapParticle 越过边缘 WrapMargin 后从对侧出现，返回是否发生环绕
func (s *NebulaState) wrapParticle(p *components.Particle) bool {
	m := config.WrapMargin
	wrapped := false
	if p.X < -m {
		p.X = s.Width + m
		wrapped = true
	} else if p.X > s.Width+m {
		p.X = -m
		wrapped = true
	}
	if p.Y < -m {
		p.Y = s.Height + m
		wrapped = true
	} else if p.Y > s.Height+m {
		p.Y = -m
		wrapped = true
	}
	return wrapped
}

// ---------- 云团 ----------

func (s *NebulaState) seedClouds() {
	prof := s.opts.Profile
	s.Clouds = make([]*components.Cloud, 0, 18)
	for band, bandCfg := range config.CloudBands {
		count := int(math.Round(float64(bandCfg.Count) * prof.CloudScale))
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			c := &components.Cloud{
				BaseX:         s.rng.Float64() * s.Width,
				BaseY:         s.rng.Float64() * s.Height,
				Size:          bandCfg.SizeMin + s.rng.Float64()*(bandCfg.SizeMax-bandCfg.SizeMin),
				Density:       bandCfg.DensityMin + s.rng.Float64()*(bandCfg.DensityMax-bandCfg.DensityMin),
				Rotation:      s.rng.Float64() * 2 * math.Pi,
				RotationSpeed: (s.rng.Float64() - 0.5) * 0.002 * s.opts.SpeedMultiplier,
				Hue:           s.opts.BaseHue + bandCfg.HueOffset + (s.rng.Float64()*2-1)*bandCfg.HueJitter,
				PulsePhase:    s.rng.Float64() * 2 * math.Pi,
				DriftPhase:    s.rng.Float64() * 2 * math.Pi,
				Layers:        prof.CloudLayersMin + s.rng.Intn(prof.CloudLayersMax-prof.CloudLayersMin+1),
				Band:          band,
			}
			c.X, c.Y = c.BaseX, c.BaseY
			s.Clouds = append(s.Clouds, c)
		}
	}
}

func (s *NebulaState) updateClouds() {
	speed := s.opts.SpeedMultiplier
	for _, c := range s.Clouds {
		c.Rotation += c.RotationSpeed
		c.PulsePhase += 0.01 * speed
		c.X = c.BaseX + math.Sin(s.Time*0.002*speed+c.DriftPhase)*30
		c.Y = c.BaseY + math.Cos(s.Time*0.0015*speed+c.DriftPhase)*20
	}
}

// CloudRadius 带呼吸脉动的云团半径
func CloudRadius(c *components.Cloud) float64 {
	return c.Size * (1 + math.Sin(c.PulsePhase)*0.08)
}

// ---------- 静态星星背景 ----------

// ensureStaticStars 第一次获得尺寸时创建 80 颗圆盘分布的静态星星
func (s *NebulaState) ensureStaticStars() {
	if s.StaticStars != nil {
		return
	}
	cx, cy := s.Width/2, s.Height/2
	radius := math.Hypot(s.Width, s.Height) / 2
	scale := s.opts.Profile.StaticStarsScale
	if scale <= 0 {
		scale = 1
	}

	s.StaticStars = make([]components.StaticStar, config.StaticStarCount)
	for i := range s.StaticStars {
		// sqrt 使面积上均匀分布
		r := math.Sqrt(s.rng.Float64()) * radius
		a := s.rng.Float64() * 2 * math.Pi
		s.StaticStars[i] = components.StaticStar{
			X:            cx + math.Cos(a)*r,
			Y:            cy + math.Sin(a)*r,
			Size:         (0.5 + s.rng.Float64()*1.5) * scale,
			Brightness:   0.4 + s.rng.Float64()*0.6,
			Phase:        s.rng.Float64() * 2 * math.Pi,
			TwinkleSpeed: 0.01 + s.rng.Float64()*0.03,
			HueOffset:    (s.rng.Float64()*2 - 1) * 20,
		}
	}
}

// StaticStarBrightness 静态星星当前亮度
func StaticStarBrightness(star *components.StaticStar, t float64) float64 {
	return star.Brightness * (0.6 + 0.4*math.Sin(t*star.TwinkleSpeed+star.Phase))
}

// ---------- 流星 ----------

// ShootingStarChance 每帧生成流星的概率（按 intensity 在 0.6%~1.2% 之间）
func ShootingStarChance(intensity float64) float64 {
	return utils.Lerp(config.ShootingStarChanceMin, config.ShootingStarChanceMax, utils.Clamp01(intensity))
}

func (s *NebulaState) updateShootingStars() {
	if s.rng.Float64() < ShootingStarChance(s.opts.Intensity) {
		s.spawnShootingStar()
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.ShootingStars) {
		star, ok := ecs.GetComponent[*components.ShootingStarComponent](s.ShootingStars, id)
		if !ok {
			continue
		}

		star.Trail = append(star.Trail, [2]float64{star.X, star.Y})
		if len(star.Trail) > config.ShootingStarTrailMax {
			star.Trail = star.Trail[1:]
		}
		star.X += star.VX
		star.Y += star.VY
		star.Life--

		if star.Life <= 0 || s.outOfBounds(star.X, star.Y, 100) {
			s.ShootingStars.DestroyEntity(id)
		}
	}
	s.ShootingStars.RemoveMarkedEntities()
}

// spawnShootingStar 从上边缘或左边缘生成一颗向右下方划过的流星
func (s *NebulaState) spawnShootingStar() {
	var x, y float64
	if s.rng.Float64() < 0.5 {
		x = s.rng.Float64() * s.Width
		y = -10
	} else {
		x = -10
		y = s.rng.Float64() * s.Height * 0.6
	}

	angle := math.Pi/6 + s.rng.Float64()*math.Pi/6
	speed := 6 + s.rng.Float64()*6
	maxLife := 50 + s.rng.Intn(40)

	id := s.ShootingStars.CreateEntity()
	ecs.AddComponent(s.ShootingStars, id, &components.ShootingStarComponent{
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Life:    maxLife,
		MaxLife: maxLife,
		Size:    1 + s.rng.Float64()*1.5,
		Hue:     s.opts.BaseHue + (s.rng.Float64()*2-1)*15,
		Trail:   make([][2]float64, 0, config.ShootingStarTrailMax),
	})
	s.Stats.ShootingSpawns++
}

func (s *NebulaState) outOfBounds(x, y, margin float64) bool {
	return x < -margin || x > s.Width+margin || y < -margin || y > s.Height+margin
}
