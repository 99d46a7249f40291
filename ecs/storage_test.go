package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/tanks/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageAddAndGet(t *testing.T) {
	w := newTestWorld()
	id := w.entities.Next()

	require.NoError(t, ecs.Add(w.storage, id, Position{X: 1, Y: 2}))

	pos := ecs.Get[Position](w.storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1), pos.X)
	assert.Equal(t, float32(2), pos.Y)

	pos.X = 10
	assert.Equal(t, float32(10), ecs.Get[Position](w.storage, id).X)
}

func TestStorageDuplicateComponent(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(Health{Current: 50, Max: 100})

	err := ecs.Add(w.storage, id, Health{Current: 1, Max: 1})
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)

	// The first value must survive the failed add.
	health := ecs.Get[Health](w.storage, id)
	require.NotNil(t, health)
	assert.Equal(t, 50, health.Current)
	assert.Equal(t, 100, health.Max)
}

func TestStorageUnregisteredComponent(t *testing.T) {
	w := newTestWorld()
	id := w.entities.Next()

	type unknown struct{ V int }
	err := ecs.Add(w.storage, id, unknown{V: 1})
	assert.ErrorIs(t, err, ecs.ErrUnregisteredComponent)
	assert.Nil(t, ecs.Get[unknown](w.storage, id))
	assert.False(t, ecs.Has[unknown](w.storage, id))
}

func TestStorageMustGetMissing(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(Position{})

	_, err := ecs.MustGet[Velocity](w.storage, id)
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)

	pos, err := ecs.MustGet[Position](w.storage, id)
	assert.NoError(t, err)
	assert.NotNil(t, pos)
}

func TestStorageAddComponentAcceptsPointers(t *testing.T) {
	w := newTestWorld()
	id := w.entities.Next()

	require.NoError(t, w.storage.AddComponent(id, &Name{Value: "ptr"}))
	require.NoError(t, w.storage.AddComponent(id, Score(7)))

	assert.Equal(t, "ptr", ecs.Get[Name](w.storage, id).Value)
	assert.Equal(t, Score(7), *ecs.Get[Score](w.storage, id))
}

func TestStorageSpawnRollsBackOnFailure(t *testing.T) {
	w := newTestWorld()
	id := w.entities.Next()

	err := w.storage.Spawn(id, Position{}, Velocity{}, Position{X: 1})
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)
	assert.False(t, w.storage.Alive(id))
}

func TestStorageDeleteRemovesFromEveryType(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(Position{}, Velocity{}, Name{Value: "doomed"}, Score(3))
	other := w.spawn(Position{}, Score(4))

	removed := w.storage.Delete(id)
	assert.Equal(t, 4, removed)

	registry := w.storage.Registry()
	for i := 0; i < registry.Len(); i++ {
		assert.False(t, w.storage.Contains(id, ecs.ComponentID(i)), registry.Type(ecs.ComponentID(i)).String())
	}
	assert.False(t, w.storage.Alive(id))

	assert.True(t, ecs.Has[Position](w.storage, other))
	assert.Equal(t, Score(4), *ecs.Get[Score](w.storage, other))

	// Deleting twice is a no-op.
	assert.Equal(t, 0, w.storage.Delete(id))
}

func TestStorageRemoveComponent(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(Position{}, Velocity{})

	assert.True(t, ecs.RemoveComponent[Velocity](w.storage, id))
	assert.False(t, ecs.RemoveComponent[Velocity](w.storage, id))
	assert.True(t, ecs.Has[Position](w.storage, id))
	assert.False(t, ecs.Has[Velocity](w.storage, id))
}

func TestStorageMask(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(Position{}, Score(1))

	registry := w.storage.Registry()
	posID, _ := registry.ID(reflect.TypeFor[Position]())
	scoreID, _ := registry.ID(reflect.TypeFor[Score]())
	velID, _ := registry.ID(reflect.TypeFor[Velocity]())

	mask := w.storage.Mask(id)
	assert.True(t, mask.Has(posID))
	assert.True(t, mask.Has(scoreID))
	assert.False(t, mask.Has(velID))
	assert.True(t, mask.Contains(ecs.Mask(0).With(posID).With(scoreID)))
}

func TestStorageComponentsAndEntities(t *testing.T) {
	w := newTestWorld()
	a := w.spawn(Position{X: 1}, Name{Value: "a"})
	b := w.spawn(Velocity{DX: 2})
	c := w.spawn(Score(9))
	w.storage.Delete(b)

	assert.Equal(t, []ecs.Entity{a, c}, w.storage.Entities())

	components := w.storage.Components(a)
	require.Len(t, components, 2)
	assert.IsType(t, &Position{}, components[0])
	assert.IsType(t, &Name{}, components[1])

	name := w.storage.ComponentByType(a, reflect.TypeFor[Name]())
	assert.Equal(t, "a", name.(*Name).Value)
}

func TestStorageCompactPreservesOrderAndValues(t *testing.T) {
	w := newTestWorld()

	var ids []ecs.Entity
	for i := 0; i < 200; i++ {
		ids = append(ids, w.spawn(Position{X: float32(i)}))
	}
	for i := 0; i < 200; i += 3 {
		w.storage.Delete(ids[i])
	}

	holes := w.storage.Holes()
	assert.Equal(t, 67, holes)
	assert.Equal(t, holes, w.storage.Compact())
	assert.Equal(t, 0, w.storage.Holes())

	view := ecs.NewView[struct{ *Position }](w.storage)
	var got []float32
	for _, item := range view.Iter() {
		got = append(got, item.Position.X)
	}
	var want []float32
	for i := 0; i < 200; i++ {
		if i%3 != 0 {
			want = append(want, float32(i))
		}
	}
	assert.Equal(t, want, got)

	for i, id := range ids {
		pos := ecs.Get[Position](w.storage, id)
		if i%3 == 0 {
			assert.Nil(t, pos)
			continue
		}
		require.NotNil(t, pos)
		assert.Equal(t, float32(i), pos.X)
	}
}

func TestStoragePointersStableAcrossGrowth(t *testing.T) {
	w := newTestWorld()
	first := w.spawn(Position{X: 42})
	ptr := ecs.Get[Position](w.storage, first)

	for i := 0; i < 1000; i++ {
		w.spawn(Position{X: float32(i)})
	}

	assert.Same(t, ptr, ecs.Get[Position](w.storage, first))
	assert.Equal(t, float32(42), ptr.X)
}

func TestStorageCount(t *testing.T) {
	w := newTestWorld()
	w.spawn(Position{}, Velocity{})
	w.spawn(Position{})
	w.spawn(Velocity{}, Position{}, Score(1))

	registry := w.storage.Registry()
	posID, _ := registry.ID(reflect.TypeFor[Position]())
	velID, _ := registry.ID(reflect.TypeFor[Velocity]())

	assert.Equal(t, 3, w.storage.Count(posID))
	assert.Equal(t, 2, w.storage.Count(posID, velID))
	assert.Equal(t, 3, w.storage.Count())

	unknown := ecs.ComponentID(registry.Len())
	assert.Equal(t, 0, w.storage.Count(unknown))
	assert.Equal(t, 0, w.storage.Count(posID, unknown))
}

func TestStorageRejectsZeroEntity(t *testing.T) {
	w := newTestWorld()
	live := w.spawn(Position{X: 1})

	err := ecs.Add(w.storage, 0, Position{X: 2})
	assert.ErrorIs(t, err, ecs.ErrInvalidEntity)
	assert.ErrorIs(t, w.storage.Spawn(0, Velocity{}), ecs.ErrInvalidEntity)
	assert.False(t, ecs.Has[Position](w.storage, 0))
	assert.False(t, w.storage.Alive(0))

	w.storage.Delete(live)
	w.storage.Compact()
	assert.Nil(t, ecs.Get[Position](w.storage, 0))
	assert.Empty(t, w.storage.Entities())
}

func TestRegisterComponentIsIdempotent(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	a := ecs.RegisterComponent[Position](registry)
	b := ecs.RegisterComponent[Velocity](registry)
	again := ecs.RegisterComponent[Position](registry)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, registry.Len())
}

func TestRegisterComponentRejectsPointers(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	assert.Panics(t, func() {
		ecs.RegisterComponent[*Position](registry)
	})
}

func TestStorageSeesLateRegistrations(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	storage := ecs.NewStorage(registry)

	ecs.RegisterComponent[Velocity](registry)
	require.NoError(t, ecs.Add(storage, 1, Velocity{DX: 3}))
	assert.Equal(t, float32(3), ecs.Get[Velocity](storage, 1).DX)
}

func TestCollectStats(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 70; i++ {
		w.spawn(Position{}, Velocity{})
	}
	doomed := w.spawn(Position{}, Name{Value: "x"})
	w.storage.Delete(doomed)

	stats := w.storage.CollectStats()
	assert.Equal(t, w.storage.Registry().Len(), stats.ComponentTypeCount)
	assert.Equal(t, 70, stats.EntityCount)
	assert.Equal(t, 140, stats.TotalRows)
	assert.Equal(t, 2, stats.TotalHoles)

	byName := map[string]ecs.ComponentStats{}
	for _, c := range stats.Components {
		byName[c.Name] = c
	}
	pos := byName["ecs_test.Position"]
	assert.Equal(t, 70, pos.Rows)
	assert.Equal(t, 1, pos.Holes)
	assert.Equal(t, 2, pos.Blocks)
}
