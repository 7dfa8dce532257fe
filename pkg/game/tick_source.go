package game

import (
	"sync"
	"time"
)

// TickFunc 每帧回调
// now 是 tick 源启动以来经过的时间
type TickFunc func(now time.Duration)

// TickSource 帧驱动源
//
// 把"每帧调度"从模拟逻辑中剥离出来：图层只注册一个回调，
// 不关心回调是由 Ebitengine 的 Update 循环驱动还是由定时器驱动。
type TickSource interface {
	// Start 注册回调并开始调度；已在运行时重复调用无效
	Start(fn TickFunc)
	// Stop 取消调度；幂等
	Stop()
	// Running 是否正在调度
	Running() bool
}

// FrameClock 由游戏循环推进的时钟，为每个图层分发独立的 FrameTickSource
type FrameClock struct {
	now     time.Duration
	sources []*FrameTickSource
}

// NewFrameClock 创建帧时钟
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// NewSource 创建一个由该时钟驱动的 tick 源
func (c *FrameClock) NewSource() *FrameTickSource {
	src := &FrameTickSource{clock: c}
	c.sources = append(c.sources, src)
	return src
}

// Now 返回最近一次 Advance 的时间
func (c *FrameClock) Now() time.Duration {
	return c.now
}

// Advance 推进时钟并触发所有运行中的回调
// 在 ebiten.Game.Update 中每 tick 调用一次
func (c *FrameClock) Advance(now time.Duration) {
	c.now = now

	// 回调中可能 Stop 自己或创建新的源，先复制一份
	sources := make([]*FrameTickSource, len(c.sources))
	copy(sources, c.sources)

	for _, src := range sources {
		src.fire(now)
	}

	// 清理已停止的源
	alive := c.sources[:0]
	for _, src := range c.sources {
		if !src.stopped {
			alive = append(alive, src)
		}
	}
	for i := len(alive); i < len(c.sources); i++ {
		c.sources[i] = nil
	}
	c.sources = alive
}

// ActiveSources 返回仍在运行的源数量（用于检测泄漏的回调）
func (c *FrameClock) ActiveSources() int {
	n := 0
	for _, src := range c.sources {
		if src.Running() {
			n++
		}
	}
	return n
}

// FrameTickSource 由 FrameClock 驱动的 tick 源
type FrameTickSource struct {
	clock   *FrameClock
	fn      TickFunc
	started bool
	stopped bool
	origin  time.Duration

	// 统计（用于测试生命周期）
	starts int
	stops  int
}

// Start 实现 TickSource
func (s *FrameTickSource) Start(fn TickFunc) {
	if s.started || s.stopped || fn == nil {
		return
	}
	s.fn = fn
	s.started = true
	s.origin = s.clock.now
	s.starts++
}

// Stop 实现 TickSource
func (s *FrameTickSource) Stop() {
	if !s.started || s.stopped {
		return
	}
	s.stopped = true
	s.fn = nil
	s.stops++
}

// Running 实现 TickSource
func (s *FrameTickSource) Running() bool {
	return s.started && !s.stopped
}

// Starts 返回 Start 生效的次数
func (s *FrameTickSource) Starts() int { return s.starts }

// Stops 返回 Stop 生效的次数
func (s *FrameTickSource) Stops() int { return s.stops }

func (s *FrameTickSource) fire(now time.Duration) {
	if !s.Running() {
		return
	}
	s.fn(now - s.origin)
}

// TimerTickSource 由 time.Ticker 驱动的 tick 源（无窗口运行时使用）
// 回调在独立的 goroutine 上执行；Stop 会等待该 goroutine 退出
type TimerTickSource struct {
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewTimerTickSource 创建定时器 tick 源
func NewTimerTickSource(interval time.Duration) *TimerTickSource {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TimerTickSource{interval: interval}
}

// Start 实现 TickSource
func (s *TimerTickSource) Start(fn TickFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || fn == nil {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(fn, s.stopCh, s.doneCh)
}

func (s *TimerTickSource) run(fn TickFunc, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-stopCh:
			return
		case t := <-ticker.C:
			fn(t.Sub(start))
		}
	}
}

// Stop 实现 TickSource，阻塞直到回调 goroutine 退出
func (s *TimerTickSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// Running 实现 TickSource
func (s *TimerTickSource) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
