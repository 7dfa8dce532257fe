package game

import (
	"log"

	"github.com/decker502/starfield/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按组合创建背景场景，避免循环依赖
type SceneFactory func(composition config.Composition) Scene

// SceneManager manages which background composition is active (the background switcher).
// It ensures only one scene's Update and Draw methods are called at any given time,
// and disposes the previous scene when switching.
type SceneManager struct {
	currentScene       Scene
	currentComposition config.Composition
	sceneFactory       SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadComposition to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is disposed if it implements Disposable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentComposition 返回当前组合
func (sm *SceneManager) CurrentComposition() config.Composition {
	return sm.currentComposition
}

// LoadComposition 使用工厂函数创建并切换到指定组合
func (sm *SceneManager) LoadComposition(composition config.Composition) {
	log.Printf("[SceneManager] 加载背景组合: %s", composition)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(composition)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建背景场景: %s", composition)
		return
	}
	sm.SwitchTo(newScene)
	sm.currentComposition = composition
}

// Reload 重新创建当前组合（属性变化时完全重建并重新播种）
func (sm *SceneManager) Reload() {
	if sm.currentComposition == "" {
		return
	}
	sm.LoadComposition(sm.currentComposition)
}

// Cycle 切换到下一个组合
func (sm *SceneManager) Cycle() config.Composition {
	next := sm.currentComposition.Next()
	sm.LoadComposition(next)
	return next
}

// Close 释放当前场景
func (sm *SceneManager) Close() {
	sm.SwitchTo(nil)
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
