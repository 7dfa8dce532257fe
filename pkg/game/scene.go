package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a background composition (a fixed stack of layers).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换时调用 Dispose 释放资源
//
// 背景场景在 Dispose 中卸载所有图层：取消 tick 回调、取消 resize 订阅、释放画布。
type Disposable interface {
	Dispose()
}
