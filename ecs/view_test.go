package ecs_test

import (
	"testing"

	"github.com/plus3/tanks/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(&Position{X: 1, Y: 2}, Temperature(32))

	view := ecs.NewView[struct {
		*Position
		*Temperature
	}](w.storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, Temperature(32), *item.Temperature)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	w := newTestWorld()
	// Entity only has Position, not Velocity
	id := w.spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](w.storage)

	assert.Nil(t, view.Get(id))
}

func TestViewFillWritesThrough(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(&Position{X: 3, Y: 4}, &Health{Current: 50, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Health
	}](w.storage)

	var item struct {
		*Position
		*Health
	}
	require.True(t, view.Fill(id, &item))
	item.Health.Current -= 10

	assert.Equal(t, 40, ecs.Get[Health](w.storage, id).Current)
}

func TestViewOptional(t *testing.T) {
	w := newTestWorld()
	named := w.spawn(Position{}, Name{Value: "named"})
	anonymous := w.spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](w.storage)

	item := view.Get(named)
	require.NotNil(t, item)
	require.NotNil(t, item.Name)
	assert.Equal(t, "named", item.Name.Value)

	item = view.Get(anonymous)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)

	assert.Equal(t, 2, view.Count())
}

func TestViewEntityField(t *testing.T) {
	w := newTestWorld()
	a := w.spawn(Position{X: 1})
	b := w.spawn(Position{X: 2})

	view := ecs.NewView[struct {
		ecs.Entity
		*Position
	}](w.storage)

	var ids []ecs.Entity
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.Entity)
		ids = append(ids, item.Entity)
	}
	assert.Equal(t, []ecs.Entity{a, b}, ids)
}

// Entities holding both A and B are exactly those the two-type view yields,
// independent of creation order; the one-type view minus the two-type view
// is exactly the set holding A without B.
func TestViewQueryCorrectness(t *testing.T) {
	w := newTestWorld()
	withBoth := map[ecs.Entity]bool{}
	onlyA := map[ecs.Entity]bool{}

	// Interleave creation so neither storage order matches the other.
	for i := 0; i < 50; i++ {
		switch i % 4 {
		case 0:
			withBoth[w.spawn(Velocity{}, Position{})] = true
		case 1:
			onlyA[w.spawn(Position{})] = true
		case 2:
			w.spawn(Velocity{})
		case 3:
			withBoth[w.spawn(Position{}, Name{}, Velocity{})] = true
		}
	}

	both := ecs.NewView[struct {
		*Position
		*Velocity
	}](w.storage)
	single := ecs.NewView[struct{ *Position }](w.storage)

	gotBoth := map[ecs.Entity]bool{}
	for id := range both.Iter() {
		gotBoth[id] = true
	}
	assert.Equal(t, withBoth, gotBoth)

	gotOnlyA := map[ecs.Entity]bool{}
	for id := range single.Iter() {
		if !gotBoth[id] {
			gotOnlyA[id] = true
		}
	}
	assert.Equal(t, onlyA, gotOnlyA)
}

func TestViewIterFollowsBaseInsertionOrder(t *testing.T) {
	w := newTestWorld()
	first := w.entities.Next()
	second := w.entities.Next()

	// second gets its Velocity first, so Velocity order is reversed.
	require.NoError(t, ecs.Add(w.storage, second, Velocity{}))
	require.NoError(t, ecs.Add(w.storage, first, Velocity{}))
	require.NoError(t, ecs.Add(w.storage, first, Position{}))
	require.NoError(t, ecs.Add(w.storage, second, Position{}))

	byPosition := ecs.NewView[struct {
		*Position
		*Velocity
	}](w.storage)
	byVelocity := ecs.NewView[struct {
		*Velocity
		*Position
	}](w.storage)

	var order []ecs.Entity
	for id := range byPosition.Iter() {
		order = append(order, id)
	}
	assert.Equal(t, []ecs.Entity{first, second}, order)

	order = order[:0]
	for id := range byVelocity.Iter() {
		order = append(order, id)
	}
	assert.Equal(t, []ecs.Entity{second, first}, order)
}

func TestViewPanicsOnStructuralChange(t *testing.T) {
	w := newTestWorld()
	w.spawn(Position{})
	w.spawn(Position{})

	view := ecs.NewView[struct {
		ecs.Entity
		*Position
	}](w.storage)

	assert.PanicsWithValue(t, ecs.ErrViewInvalidated, func() {
		for id := range view.Iter() {
			w.storage.Delete(id)
		}
	})
}

func TestViewAllowsValueMutation(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 10; i++ {
		w.spawn(Position{X: float32(i)}, Velocity{DX: 1})
	}

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](w.storage)

	assert.NotPanics(t, func() {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	})

	var sum float32
	for item := range view.Values() {
		sum += item.Position.X
	}
	assert.Equal(t, float32(55), sum)
}

func TestViewRejectsMalformedStructs(t *testing.T) {
	w := newTestWorld()

	assert.Panics(t, func() {
		ecs.NewView[struct{ Position }](w.storage)
	}, "non-pointer field")

	assert.Panics(t, func() {
		ecs.NewView[struct {
			Name *Name `ecs:"optional"`
		}](w.storage)
	}, "no required component")

	assert.Panics(t, func() {
		ecs.NewView[struct {
			Name *Name `ecs:"sometimes"`
		}](w.storage)
	}, "bad tag")

	type unregistered struct{}
	assert.PanicsWithError(t, "component type not registered: ecs_test.unregistered", func() {
		ecs.NewView[struct{ *unregistered }](w.storage)
	})
}
