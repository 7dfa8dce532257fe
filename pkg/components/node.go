package components

// Node 连线图层的节点
// 碰到画布边缘时速度分量取反（完全弹性）
type Node struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}
