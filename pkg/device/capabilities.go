// Package device 提供设备能力探测与分级
//
// 宿主环境提供的信号（UA、触控、内存、核心数、视口宽度）都是尽力而为的，
// 可能缺失。Classify 把它们整理成一个字段完整、带显式默认值的 Capabilities，
// 只在挂载时计算一次，之后向下传递，模拟核心不再自行探测环境。
package device

import "regexp"

// 缺失信号时的默认值
const (
	DefaultMemoryGB = 4.0
	DefaultCores    = 4
)

// 低端移动设备判定阈值
const (
	LowEndMemoryGB = 3.0
	LowEndCores    = 4
	LowEndWidth    = 480
	// MobileMaxWidth 视口宽度不超过该值即视为移动设备
	MobileMaxWidth = 768
)

var mobileUserAgent = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini|mobile`)

// Signals 宿主环境的原始能力信号
// 零值表示"未知"
type Signals struct {
	UserAgent     string
	CoarsePointer bool
	Touch         bool
	MemoryGB      float64 // 0 表示未知
	Cores         int     // 0 表示未知
	ViewportWidth int     // 0 表示未知
	// ForceMobile 由构建标签或调试开关强制视为移动设备
	ForceMobile bool
}

// Capabilities 分级后的设备能力记录（所有字段均已填充）
type Capabilities struct {
	Mobile        bool
	MemoryGB      float64
	Cores         int
	ViewportWidth int
	LowEndMobile  bool
}

// Classify 将原始信号整理为设备能力
//
// 低端移动设备 = 移动设备 且（内存 ≤ 3GB 或 核心数 ≤ 4 或 视口宽度 ≤ 480）
// 非移动设备永远不会被判定为低端移动设备
func Classify(sig Signals) Capabilities {
	caps := Capabilities{
		MemoryGB:      sig.MemoryGB,
		Cores:         sig.Cores,
		ViewportWidth: sig.ViewportWidth,
	}
	if caps.MemoryGB <= 0 {
		caps.MemoryGB = DefaultMemoryGB
	}
	if caps.Cores <= 0 {
		caps.Cores = DefaultCores
	}

	caps.Mobile = sig.ForceMobile ||
		IsMobileUserAgent(sig.UserAgent) ||
		sig.CoarsePointer ||
		sig.Touch ||
		(caps.ViewportWidth > 0 && caps.ViewportWidth <= MobileMaxWidth)

	if caps.Mobile {
		caps.LowEndMobile = caps.MemoryGB <= LowEndMemoryGB ||
			caps.Cores <= LowEndCores ||
			(caps.ViewportWidth > 0 && caps.ViewportWidth <= LowEndWidth)
	}
	return caps
}

// IsMobileUserAgent 根据 UA 字符串判断是否为移动设备
func IsMobileUserAgent(ua string) bool {
	if ua == "" {
		return false
	}
	return mobileUserAgent.MatchString(ua)
}
