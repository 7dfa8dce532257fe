package components

// TrailPoint 拖尾上的一个历史位置
type TrailPoint struct {
	X, Y  float64
	Alpha float64 // 随时间衰减的透明度
}

// Particle 星云粒子
//
// Z 是伪深度，仅用于计算尺寸缩放，不参与真正的 3D 投影。
// Life 每个绘制帧减 1，归零时在原对象上重生（不重新分配）。
//
// This is a pure data component - simulation lives in systems.NebulaState.
type Particle struct {
	// Position / velocity (像素/帧)
	X, Y, Z    float64
	VX, VY, VZ float64

	Size float64

	// Lifecycle (帧)
	Life    int
	MaxLife int

	// Color (色相: 度, 饱和度/亮度: 0-1)
	Hue        float64
	Saturation float64
	Brightness float64

	// 脉动
	Phase  float64 // 振荡相位
	Energy float64 // 影响脉动幅度 (0-1)

	// Trail 最近位置，最新的在前，长度不超过 TrailMax
	Trail    []TrailPoint
	TrailMax int
}

// PushTrail 在拖尾头部插入当前位置，旧点透明度按 decay 衰减，超出长度的尾部丢弃
func (p *Particle) PushTrail(decay float64) {
	if p.TrailMax <= 0 {
		p.Trail = p.Trail[:0]
		return
	}
	for i := range p.Trail {
		p.Trail[i].Alpha *= decay
	}
	if len(p.Trail) < p.TrailMax {
		p.Trail = append(p.Trail, TrailPoint{})
	}
	copy(p.Trail[1:], p.Trail[:len(p.Trail)-1])
	p.Trail[0] = TrailPoint{X: p.X, Y: p.Y, Alpha: 1}
}
