package components

// Cloud 星云云团
//
// Layers 与 Size 在创建时固定；只有旋转、脉动相位和位置（周期漂移 + 缩放复位）会变化。
type Cloud struct {
	// 基准位置（漂移叠加在其上）
	BaseX, BaseY float64
	// 当前帧的实际位置 = 基准位置 + 漂移
	X, Y float64

	Size    float64
	Density float64

	Rotation      float64 // 弧度
	RotationSpeed float64 // 弧度/帧

	Hue        float64
	PulsePhase float64

	// DriftPhase 位置漂移的独立相位
	DriftPhase float64

	// Layers 同心渐变层数 (1-6)
	Layers int

	// Band 所属分带 (0-3)
	Band int
}
