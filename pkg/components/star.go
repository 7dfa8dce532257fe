package components

// Star 星空图层上的一颗星
// 闪烁由 Phase + TwinkleSpeed 的正弦振荡控制，位置缓慢漂移并在边缘环绕
type Star struct {
	X, Y         float64
	VX, VY       float64 // 漂移速度（像素/帧）
	Size         float64
	Opacity      float64 // 基础不透明度
	Phase        float64
	TwinkleSpeed float64
}

// StaticStar 星云背景中的静态星星（圆盘分布，首次获得尺寸时创建一次）
type StaticStar struct {
	X, Y         float64
	Size         float64
	Brightness   float64
	Phase        float64
	TwinkleSpeed float64
	HueOffset    float64
}
