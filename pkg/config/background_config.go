package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/decker502/starfield/pkg/embedded"
	"github.com/decker502/starfield/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Theme 主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	// ThemeAuto 未指定主题，由主题管理器按持久化值/系统偏好解析
	ThemeAuto Theme = ""
)

// Valid 是否为明确的 light/dark 主题
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Speed 动画速度档位
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Multiplier 速度档位对应的乘数：slow=0.5, normal=1, fast=2
func (s Speed) Multiplier() float64 {
	switch s {
	case SpeedNormal:
		return 1.0
	case SpeedFast:
		return 2.0
	default:
		return 0.5
	}
}

// Composition 背景组合（背景切换器可切换的图层组合）
type Composition string

const (
	CompositionNebula    Composition = "nebula"    // 仅星云
	CompositionStarfield Composition = "starfield" // 星空 + 连线
	CompositionFull      Composition = "full"      // 星云 + 星空 + 连线
)

// Compositions 背景切换器的循环顺序
var Compositions = []Composition{CompositionFull, CompositionNebula, CompositionStarfield}

// Next 返回循环顺序中的下一个组合
func (c Composition) Next() Composition {
	for i, comp := range Compositions {
		if comp == c {
			return Compositions[(i+1)%len(Compositions)]
		}
	}
	return CompositionFull
}

// 默认配置值
const (
	DefaultAnimationColor  = "#00e1ff"
	DefaultIntensity       = 0.55
	DefaultParticleCount   = 180
	DefaultSpeedMultiplier = 0.8
	DefaultSpeed           = SpeedSlow
)

// DefaultBackgroundConfigPath 嵌入的默认配置路径
const DefaultBackgroundConfigPath = "data/background.yaml"

// BackgroundConfig 背景渲染器的配置（所有图层只读共享）
type BackgroundConfig struct {
	AnimationColor  string      `yaml:"animationColor"`  // 基础颜色（十六进制）
	Intensity       float64     `yaml:"intensity"`       // 0~1 或 0~100，加载后归一化到 0~1
	Speed           Speed       `yaml:"speed"`           // slow | normal | fast
	Theme           Theme       `yaml:"theme"`           // light | dark，空值表示自动
	ParticleCount   int         `yaml:"particleCount"`   // 星云粒子基准数量
	SpeedMultiplier float64     `yaml:"speedMultiplier"` // 星云粒子速度乘数
	Composition     Composition `yaml:"composition"`     // 图层组合
}

// DefaultBackgroundConfig 返回默认配置
func DefaultBackgroundConfig() *BackgroundConfig {
	return &BackgroundConfig{
		AnimationColor:  DefaultAnimationColor,
		Intensity:       DefaultIntensity,
		Speed:           DefaultSpeed,
		Theme:           ThemeAuto,
		ParticleCount:   DefaultParticleCount,
		SpeedMultiplier: DefaultSpeedMultiplier,
		Composition:     CompositionFull,
	}
}

// ParseBackgroundConfig 解析 YAML 数据并归一化
// 未出现在 YAML 中的字段保留默认值
func ParseBackgroundConfig(data []byte) (*BackgroundConfig, error) {
	cfg := DefaultBackgroundConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse background config YAML: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadBackgroundConfig 从磁盘加载配置文件
func LoadBackgroundConfig(path string) (*BackgroundConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read background config file %s: %w", path, err)
	}

	cfg, err := ParseBackgroundConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid background config in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEmbeddedBackgroundConfig 从嵌入资源加载默认配置
func LoadEmbeddedBackgroundConfig() (*BackgroundConfig, error) {
	data, err := embedded.ReadFile(DefaultBackgroundConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded background config: %w", err)
	}
	return ParseBackgroundConfig(data)
}

// Normalize 归一化并修正所有字段
//
// 规则：
//   - Intensity > 1 视为百分比（除以 100），然后限制在 [0, 1]
//   - 未知速度档位回退为 slow
//   - ParticleCount <= 0 回退为 180，SpeedMultiplier <= 0 回退为 0.8
//   - 非法十六进制颜色回退为 #00e1ff
//   - 非 light/dark 的主题视为自动
func (c *BackgroundConfig) Normalize() {
	c.Intensity = NormalizeIntensity(c.Intensity)

	c.Speed = Speed(strings.ToLower(string(c.Speed)))
	switch c.Speed {
	case SpeedSlow, SpeedNormal, SpeedFast:
	default:
		c.Speed = DefaultSpeed
	}

	if c.ParticleCount <= 0 {
		c.ParticleCount = DefaultParticleCount
	}
	if c.SpeedMultiplier <= 0 {
		c.SpeedMultiplier = DefaultSpeedMultiplier
	}

	if _, _, _, err := utils.HexToHSL(c.AnimationColor); err != nil {
		if c.AnimationColor != "" {
			log.Printf("[BackgroundConfig] Warning: invalid animationColor %q: %v (using %s)", c.AnimationColor, err, DefaultAnimationColor)
		}
		c.AnimationColor = DefaultAnimationColor
	}

	c.Theme = Theme(strings.ToLower(string(c.Theme)))
	if !c.Theme.Valid() {
		c.Theme = ThemeAuto
	}

	switch c.Composition {
	case CompositionNebula, CompositionStarfield, CompositionFull:
	default:
		c.Composition = CompositionFull
	}
}

// NormalizeIntensity 将 0~100 或 0~1 的强度值归一化到 [0, 1]
func NormalizeIntensity(v float64) float64 {
	if v > 1 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clone 返回配置副本
func (c *BackgroundConfig) Clone() *BackgroundConfig {
	clone := *c
	return &clone
}
