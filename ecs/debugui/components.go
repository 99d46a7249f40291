package debugui

import (
	"github.com/plus3/tanks/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterComponent    *ecs.ComponentID
	maxEntitiesPerPage int
	currentPage        int
	frames             int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type StorageViewerComponent struct {
	cache         *StorageViewerCache
	selectedID    *ecs.ComponentID
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selected map[ecs.ComponentID]bool
	cache    *QueryDebuggerCache
}
