package game

import "log"

// ResizeFunc 视口尺寸变化回调
type ResizeFunc func(width, height int)

// Viewport 视口尺寸（所有图层只读共享）
// 尺寸变化时通知订阅者，代替浏览器的 resize 事件
type Viewport struct {
	width, height int
	nextID        int
	subscribers   map[int]ResizeFunc
}

// NewViewport 创建视口
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:       width,
		height:      height,
		subscribers: make(map[int]ResizeFunc),
	}
}

// Size 返回当前尺寸
func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// Set 更新尺寸，尺寸发生变化时通知所有订阅者
func (v *Viewport) Set(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	log.Printf("[Viewport] Resize %dx%d -> %dx%d", v.width, v.height, width, height)
	v.width, v.height = width, height

	// 回调中可能取消订阅，先复制
	subs := make([]ResizeFunc, 0, len(v.subscribers))
	for id := 0; id < v.nextID; id++ {
		if fn, ok := v.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	for _, fn := range subs {
		fn(width, height)
	}
}

// Subscribe 订阅尺寸变化，返回取消订阅函数（可重复调用）
func (v *Viewport) Subscribe(fn ResizeFunc) (unsubscribe func()) {
	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn
	return func() {
		delete(v.subscribers, id)
	}
}

// Subscribers 返回当前订阅者数量
func (v *Viewport) Subscribers() int {
	return len(v.subscribers)
}
