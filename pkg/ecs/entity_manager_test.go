package ecs

import "testing"

// 测试组件类型定义
type testTrailComponent struct {
	X, Y float64
}

type testLifeComponent struct {
	Life int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTrailComponent{X: 100, Y: 200})

	comp, found := GetComponent[*testTrailComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if comp.X != 100 || comp.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", comp.X, comp.Y)
	}

	if HasComponent[*testLifeComponent](em, id) {
		t.Error("Should not have component that was never added")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testLifeComponent{Life: 3})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !HasComponent[*testLifeComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if HasComponent[*testLifeComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount() = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWith1_Sorted(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		if i%2 == 0 {
			AddComponent(em, id, &testLifeComponent{Life: i})
			want = append(want, id)
		} else {
			AddComponent(em, id, &testTrailComponent{})
		}
	}

	got := GetEntitiesWith1[*testLifeComponent](em)
	if len(got) != len(want) {
		t.Fatalf("Expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GetEntitiesWith1()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	last := em.CreateEntity()
	em.DestroyEntity(last)

	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount() after Clear = %d, want 0", em.EntityCount())
	}

	// ID 不复用
	if next := em.CreateEntity(); next <= last {
		t.Errorf("CreateEntity() after Clear = %d, want > %d", next, last)
	}
}
