package config

import (
	"math"

	"github.com/decker502/starfield/pkg/device"
)

// ========== 星空图层（StarsLayer）参数 ==========

const (
	// StarBaseCount 星空图层的星星基准数量，实际数量 = floor(StarBaseCount × intensity)
	StarBaseCount = 150

	// StarTwinkleHaloThreshold 闪烁值超过该阈值的星星额外绘制光晕
	StarTwinkleHaloThreshold = 0.7

	// StarPoints 星形的尖角数（4 角星，8 个顶点）
	StarPoints = 4
)

// ========== 连线图层（ConnectionsLayer）参数 ==========

const (
	// ConnectionBaseNodes 节点基准数量，实际数量 = floor(ConnectionBaseNodes × intensity)
	ConnectionBaseNodes = 15

	// ConnectionDistance 两个节点之间距离小于该值（像素）时绘制连线
	ConnectionDistance = 120.0

	// ConnectionLineAlpha 连线透明度系数，实际透明度 = ConnectionLineAlpha × intensity
	ConnectionLineAlpha = 0.3
)

// ========== 星云图层（NebulaLayer）参数 ==========

const (
	// WrapMargin 粒子越过画布边缘该距离后从另一侧出现
	WrapMargin = 30.0

	// DepthFocal 深度缩放焦距：scale = max(DepthMinScale, DepthFocal/(DepthFocal+z))
	DepthFocal    = 800.0
	DepthMinScale = 0.1

	// 粒子初始深度范围 [DepthMin, DepthMax)
	DepthMin = 500.0
	DepthMax = 2000.0

	// ZoomRate 缩放系数：zoom = 1 + zoomPhase × ZoomRate
	ZoomRate = 0.07
	// ZoomThreshold zoom 超过该值时复位为 1 并重新分布粒子与云团
	ZoomThreshold = 2.5
	// ZoomPhaseStep 每个绘制帧 zoomPhase 的基准增量（乘以速度乘数）
	ZoomPhaseStep = 0.01

	// StaticStarCount 星云背景静态星星数量（圆盘分布）
	StaticStarCount = 80

	// 流星每帧生成概率范围，按 intensity 在 [Min, Max] 之间插值
	ShootingStarChanceMin = 0.006
	ShootingStarChanceMax = 0.012
	// ShootingStarTrailMax 流星拖尾最大点数
	ShootingStarTrailMax = 20

	// NoiseStrength 噪声场对粒子速度的推动强度
	NoiseStrength = 0.02
	// ParticleDamping 粒子速度阻尼
	ParticleDamping = 0.985
	// ParticleMaxSpeed 粒子平面速度上限（像素/帧）
	ParticleMaxSpeed = 1.5

	// HueJitter 粒子色相相对基础色相的抖动范围（±HueJitter 度）
	HueJitter = 30.0
)

// QualityProfile 按设备能力分级的渲染质量参数
type QualityProfile struct {
	Tier             string  // desktop | mobile | low-end-mobile
	TargetFPS        int     // 目标帧率
	ParticleScale    float64 // 粒子数量缩放
	CloudScale       float64 // 云团数量缩放
	CloudLayersMin   int     // 每个云团的最少同心层数
	CloudLayersMax   int     // 每个云团的最多同心层数
	TrailLength      int     // 粒子拖尾长度
	NoiseCellSize    float64 // 噪声场网格尺寸（像素）
	Glow             bool    // 是否绘制光晕/阴影
	SpikyParticles   bool    // true 时粒子绘制为多角星，false 时为两个圆
	ShootingStars    bool    // 是否生成流星
	Zoom             bool    // 是否启用缩放循环
	ParticleTrails   bool    // 是否绘制粒子拖尾
	StaticStarsScale float64 // 静态星星尺寸缩放
}

// 预定义质量档位
var (
	DesktopProfile = QualityProfile{
		Tier:             "desktop",
		TargetFPS:        60,
		ParticleScale:    1.0,
		CloudScale:       1.0,
		CloudLayersMin:   3,
		CloudLayersMax:   6,
		TrailLength:      5,
		NoiseCellSize:    25,
		Glow:             true,
		SpikyParticles:   true,
		ShootingStars:    true,
		Zoom:             true,
		ParticleTrails:   true,
		StaticStarsScale: 1.0,
	}

	MobileProfile = QualityProfile{
		Tier:             "mobile",
		TargetFPS:        60,
		ParticleScale:    0.8,
		CloudScale:       0.75,
		CloudLayersMin:   2,
		CloudLayersMax:   4,
		TrailLength:      4,
		NoiseCellSize:    32,
		Glow:             false,
		SpikyParticles:   true,
		ShootingStars:    false,
		Zoom:             false,
		ParticleTrails:   true,
		StaticStarsScale: 0.9,
	}

	LowEndMobileProfile = QualityProfile{
		Tier:             "low-end-mobile",
		TargetFPS:        40,
		ParticleScale:    0.5,
		CloudScale:       0.5,
		CloudLayersMin:   1,
		CloudLayersMax:   2,
		TrailLength:      3,
		NoiseCellSize:    38,
		Glow:             false,
		SpikyParticles:   false,
		ShootingStars:    false,
		Zoom:             false,
		ParticleTrails:   false,
		StaticStarsScale: 0.8,
	}
)

// ProfileFor 根据设备能力选择质量档位
// 移动设备一律关闭光晕；低端移动设备进一步降低帧率和数量
func ProfileFor(caps device.Capabilities) QualityProfile {
	switch {
	case caps.LowEndMobile:
		return LowEndMobileProfile
	case caps.Mobile:
		return MobileProfile
	default:
		return DesktopProfile
	}
}

// ParticleCountFor 计算某档位下的实际粒子数量（至少 1 个）
func (p QualityProfile) ParticleCountFor(base int) int {
	n := int(math.Round(float64(base) * p.ParticleScale))
	if n < 1 {
		n = 1
	}
	return n
}

// CloudBand 云团分带参数（大小、密度、色相偏移各不相同）
type CloudBand struct {
	Count      int     // 桌面端数量
	SizeMin    float64 // 半径下限
	SizeMax    float64 // 半径上限
	DensityMin float64
	DensityMax float64
	HueOffset  float64 // 相对基础色相的偏移
	HueJitter  float64 // 偏移上的随机抖动
}

// CloudBands 四个云团分带：大而稀 → 小而密
var CloudBands = [4]CloudBand{
	{Count: 3, SizeMin: 220, SizeMax: 360, DensityMin: 0.15, DensityMax: 0.25, HueOffset: 0, HueJitter: 15},
	{Count: 4, SizeMin: 140, SizeMax: 240, DensityMin: 0.2, DensityMax: 0.35, HueOffset: -25, HueJitter: 15},
	{Count: 5, SizeMin: 80, SizeMax: 140, DensityMin: 0.25, DensityMax: 0.4, HueOffset: 25, HueJitter: 20},
	{Count: 6, SizeMin: 40, SizeMax: 80, DensityMin: 0.3, DensityMax: 0.5, HueOffset: 45, HueJitter: 25},
}
