package components

// ShootingStarComponent 流星（仅桌面端）
// 作为 ECS 实体存在于星云状态自己的 EntityManager 中，寿命耗尽或飞出画面即销毁
type ShootingStarComponent struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Size    float64
	Hue     float64

	// Trail 累积的历史位置，最新的在后
	Trail [][2]float64
}
