package game

import (
	"testing"

	"github.com/decker502/starfield/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	disposed     int
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// Dispose records how many times the scene was disposed.
func (m *MockScene) Dispose() {
	m.disposed++
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo disposes the previous scene exactly once.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first) // 同一场景不应被释放
	if first.disposed != 0 {
		t.Fatalf("switching to the same scene disposed it %d times", first.disposed)
	}

	sm.SwitchTo(second)
	if sm.currentScene != second {
		t.Error("SwitchTo did not set the current scene correctly")
	}
	if first.disposed != 1 {
		t.Errorf("previous scene disposed %d times, want 1", first.disposed)
	}

	sm.Close()
	if second.disposed != 1 {
		t.Errorf("Close disposed current scene %d times, want 1", second.disposed)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Close should leave no active scene")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update/Draw handle nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // Should not panic
	sm.Draw(nil)     // Should not panic
	sm.Reload()      // 没有组合时不做任何事
}

// TestSceneManagerLoadComposition verifies the factory path and cycling order.
func TestSceneManagerLoadComposition(t *testing.T) {
	sm := NewSceneManager()
	created := make(map[config.Composition]int)
	var scenes []*MockScene
	sm.SetSceneFactory(func(c config.Composition) Scene {
		created[c]++
		s := &MockScene{}
		scenes = append(scenes, s)
		return s
	})

	sm.LoadComposition(config.CompositionFull)
	if sm.CurrentComposition() != config.CompositionFull {
		t.Fatalf("CurrentComposition() = %q, want full", sm.CurrentComposition())
	}

	if next := sm.Cycle(); next != config.CompositionNebula {
		t.Errorf("Cycle() = %q, want nebula", next)
	}
	if next := sm.Cycle(); next != config.CompositionStarfield {
		t.Errorf("Cycle() = %q, want starfield", next)
	}
	if next := sm.Cycle(); next != config.CompositionFull {
		t.Errorf("Cycle() = %q, want full", next)
	}

	sm.Reload()
	if created[config.CompositionFull] != 3 {
		t.Errorf("full composition created %d times, want 3", created[config.CompositionFull])
	}

	// 除当前场景外，所有旧场景都已被释放
	for i, s := range scenes[:len(scenes)-1] {
		if s.disposed != 1 {
			t.Errorf("scene %d disposed %d times, want 1", i, s.disposed)
		}
	}
}
