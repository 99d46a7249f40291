package ecs

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	ComponentTypeCount int
	EntityCount        int
	TotalRows          int
	TotalHoles         int
	Components         []ComponentStats
}

// ComponentStats describes a single per-type storage.
type ComponentStats struct {
	ID     ComponentID
	Name   string
	Rows   int
	Holes  int
	Blocks int
}

// CollectStats gathers statistics about every component storage.
func (s *Storage) CollectStats() *StorageStats {
	s.sync()
	stats := &StorageStats{
		ComponentTypeCount: len(s.storages),
		EntityCount:        len(s.Entities()),
		Components:         make([]ComponentStats, 0, len(s.storages)),
	}
	for _, cs := range s.storages {
		stats.TotalRows += cs.Len()
		stats.TotalHoles += cs.Holes()
		stats.Components = append(stats.Components, ComponentStats{
			ID:     cs.ID(),
			Name:   cs.Type().String(),
			Rows:   cs.Len(),
			Holes:  cs.Holes(),
			Blocks: cs.Blocks(),
		})
	}
	return stats
}
