package systems

import "github.com/hajimehoshi/ebiten/v2"

// BlendMode 图层/元素的合成方式
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota // 普通 alpha 合成
	BlendScreen                      // 1-(1-src)(1-dst)，只提亮
	BlendMultiply                    // src×dst，只变暗
	BlendLighter                     // 加法，用于光晕
)

// String 返回混合模式名称
func (b BlendMode) String() string {
	switch b {
	case BlendScreen:
		return "screen"
	case BlendMultiply:
		return "multiply"
	case BlendLighter:
		return "lighter"
	default:
		return "source-over"
	}
}

// Ebiten 转换为 ebiten.Blend（颜色均为预乘 alpha）
func (b BlendMode) Ebiten() ebiten.Blend {
	switch b {
	case BlendScreen:
		// result = src + dst×(1-src)
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendMultiply:
		// result = src×dst + dst×(1-srcA)，透明处保持目标不变
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendLighter:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}
