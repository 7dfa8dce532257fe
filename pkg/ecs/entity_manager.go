package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
//
// 星云图层用它管理短生命周期的流星：生成时创建实体，
// 寿命耗尽或飞出画面时标记删除，在帧末统一清理。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// addComponent 为实体添加组件
func (em *EntityManager) addComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// Clear 立即删除所有实体（ID 计数不重置）
func (em *EntityManager) Clear() {
	em.components = make(map[EntityID]map[reflect.Type]interface{})
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// EntityCount 返回当前存活的实体数量（含已标记但未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// AddComponent 为实体添加组件（泛型版本）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponent(id, component)
}

// GetComponent 获取实体的特定类型组件（泛型版本）
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[reflect.TypeOf(zero)]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := GetComponent[T](em, id)
	return ok
}

// GetEntitiesWith1 查询拥有组件 T 的所有实体
// 结果按 ID 升序排列，保证绘制顺序稳定
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	var zero T
	componentType := reflect.TypeOf(zero)

	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, found := compMap[componentType]; found {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
