package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Tap 本帧识别到的点按手势
type Tap int

const (
	TapNone Tap = iota
	// TapSingle 单指点按或鼠标左键单击
	TapSingle
	// TapMulti 两指及以上同时按下
	TapMulti
)

// JustTapped 检查本帧是否刚刚发生点按
// 触摸优先于鼠标；多指手势在第二根手指按下时识别
func JustTapped() Tap {
	justPressed := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justPressed) > 0 {
		if len(ebiten.AppendTouchIDs(nil)) >= 2 {
			return TapMulti
		}
		return TapSingle
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return TapSingle
	}
	return TapNone
}

// IsTouchDevice 检测当前是否有活动的触摸
func IsTouchDevice() bool {
	return len(ebiten.AppendTouchIDs(nil)) > 0
}
