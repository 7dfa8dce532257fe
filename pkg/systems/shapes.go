package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// StarPolygon 返回多角星的顶点（外顶点与内顶点交替，共 2×points 个）
// rotation 为弧度；第一个外顶点指向正上方再加 rotation
func StarPolygon(cx, cy, outer, inner float64, points int, rotation float64) [][2]float64 {
	if points < 2 {
		points = 2
	}
	n := points * 2
	verts := make([][2]float64, n)
	step := math.Pi / float64(points)
	for i := 0; i < n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := rotation - math.Pi/2 + float64(i)*step
		verts[i] = [2]float64{cx + math.Cos(a)*r, cy + math.Sin(a)*r}
	}
	return verts
}

// whiteSubImage 纯白纹理，DrawTriangles 用顶点颜色着色
// 取 3x3 图片中间的 1x1，避免边缘采样带入透明像素
var whiteSubImage *ebiten.Image

func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ShapeBatch 以扇形三角化累积多边形，Flush 时用 DrawTriangles 提交
//
// DrawTriangles 的索引是 uint16，单次最多 65535 个顶点；超出时当前块被封存，
// 后续多边形写入新块，Flush 按顺序逐块提交，不会丢图形。
// 顶点/索引数组在帧间复用，避免每帧分配。
type ShapeBatch struct {
	vertices []ebiten.Vertex
	indices  []uint16

	// sealed 已写满的块（按加入顺序），spare 复用的空块
	sealed []shapeChunk
	spare  []shapeChunk
}

type shapeChunk struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// Reset 清空已累积的图形
func (b *ShapeBatch) Reset() {
	for _, c := range b.sealed {
		b.spare = append(b.spare, shapeChunk{vertices: c.vertices[:0], indices: c.indices[:0]})
	}
	b.sealed = b.sealed[:0]
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// Len 已累积的顶点数（所有块之和）
func (b *ShapeBatch) Len() int {
	n := len(b.vertices)
	for _, c := range b.sealed {
		n += len(c.vertices)
	}
	return n
}

// Chunks 需要的 DrawTriangles 调用次数
func (b *ShapeBatch) Chunks() int {
	n := len(b.sealed)
	if len(b.indices) > 0 {
		n++
	}
	return n
}

// seal 封存当前块并换上一个空块
func (b *ShapeBatch) seal() {
	b.sealed = append(b.sealed, shapeChunk{vertices: b.vertices, indices: b.indices})
	b.vertices, b.indices = nil, nil
	if n := len(b.spare); n > 0 {
		b.vertices, b.indices = b.spare[n-1].vertices, b.spare[n-1].indices
		b.spare = b.spare[:n-1]
	}
}

// AddPolygon 以多边形中心为扇心加入一个凸/星形多边形
func (b *ShapeBatch) AddPolygon(pts [][2]float64, cx, cy float64, clr color.NRGBA) {
	if len(pts) < 3 || len(pts)+1 > math.MaxUint16 {
		return
	}
	// uint16 索引上限：当前块放不下时换块
	if len(b.vertices)+len(pts)+1 > math.MaxUint16 {
		b.seal()
	}

	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	bl := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	center := uint16(len(b.vertices))
	b.vertices = append(b.vertices, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
	})
	for _, p := range pts {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		})
	}
	n := uint16(len(pts))
	for i := uint16(0); i < n; i++ {
		b.indices = append(b.indices, center, center+1+i, center+1+(i+1)%n)
	}
}

// Flush 把累积的图形按加入顺序绘制到 dst 并清空
func (b *ShapeBatch) Flush(dst *ebiten.Image, geoM ebiten.GeoM, blend BlendMode) {
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.Blend = blend.Ebiten()
	for _, c := range b.sealed {
		drawChunk(dst, c.vertices, c.indices, geoM, op)
	}
	drawChunk(dst, b.vertices, b.indices, geoM, op)
	b.Reset()
}

func drawChunk(dst *ebiten.Image, vertices []ebiten.Vertex, indices []uint16, geoM ebiten.GeoM, op *ebiten.DrawTrianglesOptions) {
	if len(indices) == 0 {
		return
	}
	if geoM != (ebiten.GeoM{}) {
		for i := range vertices {
			x, y := geoM.Apply(float64(vertices[i].DstX), float64(vertices[i].DstY))
			vertices[i].DstX = float32(x)
			vertices[i].DstY = float32(y)
		}
	}
	dst.DrawTriangles(vertices, indices, whiteTexture(), op)
}

// glowTextureSize 径向渐变纹理边长
const glowTextureSize = 64

var glowTexture *ebiten.Image

// GlowTexture 白色径向渐变纹理（中心不透明，边缘透明），按需缩放和着色
func GlowTexture() *ebiten.Image {
	if glowTexture != nil {
		return glowTexture
	}
	pix := make([]byte, glowTextureSize*glowTextureSize*4)
	half := float64(glowTextureSize) / 2
	for y := 0; y < glowTextureSize; y++ {
		for x := 0; x < glowTextureSize; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			a := 1 - d
			if a < 0 {
				a = 0
			}
			// 平方衰减，边缘更柔和
			v := byte(a * a * 0xff)
			// 预乘 alpha
			i := (y*glowTextureSize + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	glowTexture = ebiten.NewImage(glowTextureSize, glowTextureSize)
	glowTexture.WritePixels(pix)
	return glowTexture
}

// DrawGlow 以 (cx, cy) 为中心绘制半径 radius 的着色光晕
func DrawGlow(dst *ebiten.Image, cx, cy, radius float64, clr color.NRGBA, geoM ebiten.GeoM, blend BlendMode) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	scale := radius * 2 / glowTextureSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-glowTextureSize/2, -glowTextureSize/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.GeoM.Concat(geoM)
	op.ColorScale.ScaleWithColor(clr)
	op.Blend = blend.Ebiten()
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(GlowTexture(), op)
}
