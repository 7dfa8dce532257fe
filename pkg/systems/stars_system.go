package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/config"
)

// StarCount 星空图层星星数量：floor(150 × intensity)
func StarCount(intensity float64) int {
	return int(math.Floor(config.StarBaseCount * config.NormalizeIntensity(intensity)))
}

// StarsState 星空图层的模拟状态
//
// 星星只在第一次获得尺寸时创建；之后的 resize 只更新画布尺寸，
// 已有星星保持原位，越界的星星靠环绕逐渐回到画面内。
type StarsState struct {
	rng       *rand.Rand
	intensity float64
	speed     float64

	Width, Height float64
	Stars         []components.Star
}

// NewStarsState 创建星空状态
func NewStarsState(intensity float64, speed config.Speed, rng *rand.Rand) *StarsState {
	return &StarsState{
		rng:       rng,
		intensity: config.NormalizeIntensity(intensity),
		speed:     speed.Multiplier(),
	}
}

// Resize 更新尺寸；第一次获得有效尺寸时播种
func (s *StarsState) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Width, s.Height = width, height
	if s.Stars == nil {
		s.seed()
	}
	return true
}

func (s *StarsState) seed() {
	n := StarCount(s.intensity)
	s.Stars = make([]components.Star, n)
	for i := range s.Stars {
		s.Stars[i] = components.Star{
			X:            s.rng.Float64() * s.Width,
			Y:            s.rng.Float64() * s.Height,
			VX:           (s.rng.Float64() - 0.5) * 0.1 * s.speed,
			VY:           (s.rng.Float64() - 0.5) * 0.1 * s.speed,
			Size:         0.5 + s.rng.Float64()*2,
			Opacity:      0.3 + s.rng.Float64()*0.7,
			Phase:        s.rng.Float64() * 2 * math.Pi,
			TwinkleSpeed: 0.005 + s.rng.Float64()*0.02,
		}
	}
}

// Step 推进一帧：相位前进、缓慢漂移并在边缘环绕
func (s *StarsState) Step() {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	for i := range s.Stars {
		star := &s.Stars[i]
		star.Phase += star.TwinkleSpeed * s.speed
		star.X = wrap(star.X+star.VX, s.Width)
		star.Y = wrap(star.Y+star.VY, s.Height)
	}
}

// Twinkle 闪烁值 0~1
func Twinkle(star *components.Star) float64 {
	return 0.5 + 0.5*math.Sin(star.Phase)
}

// HasHalo 闪烁值超过阈值时额外绘制光晕
func HasHalo(star *components.Star) bool {
	return Twinkle(star) > config.StarTwinkleHaloThreshold
}

// wrap 环面拓扑：越过一侧边缘从另一侧出现
func wrap(v, max float64) float64 {
	if v < 0 {
		return v + max
	}
	if v >= max {
		return v - max
	}
	return v
}
