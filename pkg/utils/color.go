package utils

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HexToHSL 将十六进制颜色转换为 HSL
//
// 参数：
//   - hex: "#rrggbb" 或 "#rgb"（# 可省略）
//
// 返回：
//   - h: 色相，单位度，范围 [0, 360)
//   - s, l: 饱和度与亮度，范围 [0, 1]
//   - error: 颜色格式非法时返回错误
func HexToHSL(hex string) (h, s, l float64, err error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return 0, 0, 0, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	h, s, l = c.Hsl()
	return NormalizeHue(h), s, l, nil
}

// HSLA 将 HSL + 透明度转换为 NRGBA（非预乘）
// 各参数超出范围时会被限制到合法区间
func HSLA(h, s, l, a float64) color.NRGBA {
	c := colorful.Hsl(NormalizeHue(h), Clamp01(s), Clamp01(l)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(Clamp01(a) * 255))}
}

// NormalizeHue 将任意角度映射到 [0, 360)
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Clamp01 将数值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
