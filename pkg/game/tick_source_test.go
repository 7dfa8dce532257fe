package game

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestFrameTickSource_Lifecycle(t *testing.T) {
	clock := NewFrameClock()
	src := clock.NewSource()

	var calls []time.Duration
	clock.Advance(10 * time.Millisecond) // 启动前推进不触发
	src.Start(func(now time.Duration) {
		calls = append(calls, now)
	})
	src.Start(func(time.Duration) { t.Error("second Start must be ignored") })

	clock.Advance(20 * time.Millisecond)
	clock.Advance(30 * time.Millisecond)

	if len(calls) != 2 {
		t.Fatalf("callback fired %d times, want 2", len(calls))
	}
	// 时间相对启动时刻
	if calls[0] != 10*time.Millisecond || calls[1] != 20*time.Millisecond {
		t.Errorf("callback times = %v, want [10ms 20ms]", calls)
	}

	src.Stop()
	src.Stop()
	clock.Advance(40 * time.Millisecond)

	if len(calls) != 2 {
		t.Errorf("callback fired after Stop")
	}
	if src.Starts() != 1 || src.Stops() != 1 {
		t.Errorf("Starts=%d Stops=%d, want 1/1", src.Starts(), src.Stops())
	}
	if clock.ActiveSources() != 0 {
		t.Errorf("ActiveSources() = %d, want 0", clock.ActiveSources())
	}

	// 停止后不能再次启动
	src.Start(func(time.Duration) {})
	if src.Running() {
		t.Error("stopped source must not restart")
	}
}

func TestFrameTickSource_StopInsideCallback(t *testing.T) {
	clock := NewFrameClock()
	a := clock.NewSource()
	b := clock.NewSource()

	bCalls := 0
	a.Start(func(time.Duration) { a.Stop() })
	b.Start(func(time.Duration) { bCalls++ })

	clock.Advance(time.Millisecond)
	clock.Advance(2 * time.Millisecond)

	if a.Running() {
		t.Error("source a should have stopped itself")
	}
	if bCalls != 2 {
		t.Errorf("source b fired %d times, want 2", bCalls)
	}
}

func TestTimerTickSource_NoLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	src := NewTimerTickSource(time.Millisecond)
	var ticks atomic.Int32
	src.Start(func(time.Duration) { ticks.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatalf("timer source ticked %d times, want >= 3", ticks.Load())
	}

	src.Stop()
	src.Stop()
	if src.Running() {
		t.Error("Running() should be false after Stop")
	}

	after := ticks.Load()
	time.Sleep(5 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("callback fired after Stop returned")
	}
}
