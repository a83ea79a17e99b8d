package engine

import (
	"testing"

	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
)

func newTestWorld() *World {
	return NewWorld(NewResources(8, 1, nil))
}

func TestStoreSwapRemoveKeepsIndex(t *testing.T) {
	s := NewStore[int]()
	for e := core.Entity(1); e <= 4; e++ {
		s.Set(e, int(e)*10)
	}
	s.Remove(2)

	if s.Has(2) {
		t.Fatal("entity 2 should be gone")
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for _, e := range []core.Entity{1, 3, 4} {
		v, ok := s.Get(e)
		if !ok || v != int(e)*10 {
			t.Errorf("Get(%d) = (%d, %v)", e, v, ok)
		}
	}

	*s.Ptr(4) = 99
	if v, _ := s.Get(4); v != 99 {
		t.Errorf("Ptr write lost, got %d", v)
	}
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore[string]()
	s.Set(1, "a")
	s.Set(2, "b")
	s.Set(3, "c")
	s.Set(4, "d")

	s.RemoveBatch([]core.Entity{1, 3, 7})

	if s.Len() != 2 || !s.Has(2) || !s.Has(4) {
		t.Fatalf("unexpected contents: %v", s.All())
	}
	if v, _ := s.Get(4); v != "d" {
		t.Errorf("Get(4) = %q, want d", v)
	}
}

func TestMustPtrPanicsOnMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPtr should panic for a missing component")
		}
	}()
	NewStore[int]().MustPtr(5)
}

func TestQueryIntersectionSortedByID(t *testing.T) {
	w := newTestWorld()
	var ids []core.Entity
	for i := 0; i < 5; i++ {
		ids = append(ids, w.CreateEntity())
	}
	// Insert out of order so slot order differs from id order
	for _, i := range []int{4, 0, 2, 3} {
		w.Positions.Set(ids[i], core.Pt(float64(i), 0))
	}
	for _, i := range []int{2, 4, 0, 1} {
		w.Teams.Set(ids[i], core.TeamAttack)
	}
	w.Kill(ids[2])

	got := w.Query().With(w.Positions).With(w.Teams).Without(w.Dead).Execute()
	want := []core.Entity{ids[0], ids[4]}
	if len(got) != len(want) {
		t.Fatalf("Execute() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Execute()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestQueryEmptyAndModifyAfterExecute(t *testing.T) {
	w := newTestWorld()
	if got := w.Query().Execute(); len(got) != 0 {
		t.Errorf("empty query returned %v", got)
	}

	q := w.Query().With(w.Positions)
	q.Execute()
	defer func() {
		if recover() == nil {
			t.Error("With after Execute should panic")
		}
	}()
	q.With(w.Teams)
}

func TestDestroyEntityAndAlive(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity()
	w.Positions.Set(e, core.Pt(1, 1))
	w.Healths.Set(e, component.Health{Current: 10, Max: 10})
	w.Targets.Set(e, component.Target{Flags: component.FlagGround})

	if !w.Alive(e) {
		t.Fatal("entity with health and target should be alive")
	}
	w.Kill(e)
	if w.Alive(e) {
		t.Error("killed entity must not be alive")
	}
	w.DestroyEntity(e)
	if w.Positions.Has(e) || w.Dead.Has(e) {
		t.Error("DestroyEntity left components behind")
	}
	if w.Alive(core.NoEntity) {
		t.Error("NoEntity is never alive")
	}
}

type orderSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s orderSystem) Name() string  { return s.name }
func (s orderSystem) Priority() int { return s.priority }
func (s orderSystem) Update()       { *s.log = append(*s.log, s.name) }

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := newTestWorld()
	var log []string
	w.AddSystem(orderSystem{"c", 30, &log})
	w.AddSystem(orderSystem{"a", 10, &log})
	w.AddSystem(orderSystem{"b", 20, &log})
	w.Update()

	if len(log) != 3 || log[0] != "a" || log[1] != "b" || log[2] != "c" {
		t.Errorf("run order = %v", log)
	}
}

func TestDamageQueueDrain(t *testing.T) {
	var q DamageQueue
	q.Push(1, 5)
	q.Push(2, -3)
	events := q.Drain()
	if len(events) != 2 || events[1].Amount != -3 {
		t.Errorf("Drain() = %v", events)
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after Drain")
	}
}
