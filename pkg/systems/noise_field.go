package systems

import (
	"math"
	"math/rand"
)

// NoiseField 预先计算的粗网格角度场
// 粒子速度按所在格子的角度推动，形成平滑而非随机抖动的漂移
type NoiseField struct {
	CellSize   float64
	Cols, Rows int
	angles     []float64
}

// NewNoiseField 为给定画布尺寸生成角度场
// 角度由几组带随机相位的正弦叠加得到，相邻格子角度连续变化
func NewNoiseField(width, height, cellSize float64, rng *rand.Rand) *NoiseField {
	if cellSize <= 0 {
		cellSize = 25
	}
	cols := int(math.Ceil(width/cellSize)) + 1
	rows := int(math.Ceil(height/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	p1 := rng.Float64() * 2 * math.Pi
	p2 := rng.Float64() * 2 * math.Pi
	p3 := rng.Float64() * 2 * math.Pi

	f := &NoiseField{
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		angles:   make([]float64, cols*rows),
	}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			x, y := float64(i), float64(j)
			v := math.Sin(x*0.3+p1) + math.Cos(y*0.3+p2) + math.Sin((x+y)*0.15+p3)
			f.angles[j*cols+i] = v * math.Pi / 1.5
		}
	}
	return f
}

// Angle 返回坐标所在格子的角度；画布外的坐标取最近的边缘格子
func (f *NoiseField) Angle(x, y float64) float64 {
	i := int(x / f.CellSize)
	j := int(y / f.CellSize)
	if i < 0 {
		i = 0
	} else if i >= f.Cols {
		i = f.Cols - 1
	}
	if j < 0 {
		j = 0
	} else if j >= f.Rows {
		j = f.Rows - 1
	}
	return f.angles[j*f.Cols+i]
}
