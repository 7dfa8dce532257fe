package utils

import "math"

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³，t 超出 [0, 1] 时先截断
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
