package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/utils"
)

// Palette 由单一基础色 + 主题派生出的全部颜色
//
// 每个元素的色相都是基础色相加上固定范围内的偏移，
// 所以只改配置里的一个颜色就能让整个场景一致地换色。
type Palette struct {
	Theme     config.Theme
	BaseHue   float64
	BaseSat   float64
	BaseLight float64

	// AlphaScale 主题透明度曲线：浅色主题整体更淡
	AlphaScale float64
	// LightnessScale 浅色主题下粒子更暗，才能在浅底上看清
	LightnessScale float64
}

// NewPalette 根据基础色和主题创建调色板
// 颜色非法时回退到默认颜色
func NewPalette(hex string, theme config.Theme) Palette {
	h, s, l, err := utils.HexToHSL(hex)
	if err != nil {
		log.Printf("[Palette] Warning: %v (using %s)", err, config.DefaultAnimationColor)
		h, s, l, _ = utils.HexToHSL(config.DefaultAnimationColor)
	}

	p := Palette{
		Theme:          theme,
		BaseHue:        h,
		BaseSat:        s,
		BaseLight:      l,
		AlphaScale:     1.0,
		LightnessScale: 1.0,
	}
	if theme == config.ThemeLight {
		p.AlphaScale = 0.6
		p.LightnessScale = 0.6
	}
	return p
}

// IsLight 是否浅色主题
func (p Palette) IsLight() bool {
	return p.Theme == config.ThemeLight
}

// Color 按 HSL 生成颜色，并应用主题透明度/亮度曲线
func (p Palette) Color(hue, sat, light, alpha float64) color.NRGBA {
	return utils.HSLA(hue, sat, light*p.LightnessScale, alpha*p.AlphaScale)
}

// Background 画布底色
func (p Palette) Background() color.NRGBA {
	if p.IsLight() {
		return utils.HSLA(p.BaseHue, 0.35, 0.96, 1)
	}
	return utils.HSLA(p.BaseHue+40, 0.5, 0.035, 1)
}

// AmbientInner 环境渐变中心色
func (p Palette) AmbientInner() color.NRGBA {
	if p.IsLight() {
		return utils.HSLA(p.BaseHue, 0.6, 0.85, 0.5)
	}
	return utils.HSLA(p.BaseHue+20, 0.7, 0.18, 0.6)
}

// AmbientOuter 环境渐变外圈色（叠加在底色之上的第二层）
func (p Palette) AmbientOuter() color.NRGBA {
	if p.IsLight() {
		return utils.HSLA(p.BaseHue-30, 0.4, 0.9, 0.35)
	}
	return utils.HSLA(p.BaseHue+60, 0.6, 0.1, 0.45)
}

// BackdropBlend 静态星星与云团使用的混合模式：浅色变暗，深色提亮
func (p Palette) BackdropBlend() BlendMode {
	if p.IsLight() {
		return BlendMultiply
	}
	return BlendScreen
}

// Fade 按系数衰减颜色的透明度
func Fade(c color.NRGBA, k float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * utils.Clamp01(k)))
	return c
}
