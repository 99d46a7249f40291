package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tanks/ecs"
)

// maxListedMatches caps the entity list shown under a query.
const maxListedMatches = 50

type componentChoice struct {
	id   ecs.ComponentID
	name string
}

type QueryDebuggerCache struct {
	choices       []componentChoice
	lastTypeCount int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selected: make(map[ecs.ComponentID]bool),
		cache: &QueryDebuggerCache{
			lastTypeCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(storage)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = make(map[ecs.ComponentID]bool)
	}

	for _, choice := range qd.cache.choices {
		selected := qd.selected[choice.id]
		if imgui.Checkbox(choice.name, &selected) {
			qd.Toggle(choice.id, selected)
		}
	}

	imgui.Separator()

	ids, matches := qd.Match(storage)
	if len(ids) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		for _, e := range matches[:min(len(matches), maxListedMatches)] {
			imgui.BulletText(fmt.Sprintf("%d", e))
		}
		if len(matches) > maxListedMatches {
			imgui.Text(fmt.Sprintf("... and %d more", len(matches)-maxListedMatches))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Toggle adds or removes a component from the query.
func (qd *QueryDebuggerComponent) Toggle(id ecs.ComponentID, on bool) {
	if on {
		qd.selected[id] = true
	} else {
		delete(qd.selected, id)
	}
}

// Match returns the selected component ids in ascending order and the
// entities holding all of them.
func (qd *QueryDebuggerComponent) Match(storage *ecs.Storage) ([]ecs.ComponentID, []ecs.Entity) {
	ids := make([]ecs.ComponentID, 0, len(qd.selected))
	var mask ecs.Mask
	for id := range qd.selected {
		ids = append(ids, id)
		mask = mask.With(id)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matches []ecs.Entity
	for _, e := range storage.Entities() {
		if storage.Mask(e).Contains(mask) {
			matches = append(matches, e)
		}
	}
	return ids, matches
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	if n := storage.Registry().Len(); n != qd.cache.lastTypeCount {
		qd.rebuildCache(storage)
		qd.cache.lastTypeCount = n
	}
}

func (qd *QueryDebuggerComponent) rebuildCache(storage *ecs.Storage) {
	registry := storage.Registry()
	types := registry.Types()

	qd.cache.choices = make([]componentChoice, 0, len(types))
	for _, t := range types {
		id, _ := registry.ID(t)
		qd.cache.choices = append(qd.cache.choices, componentChoice{id: id, name: t.String()})
	}

	sort.Slice(qd.cache.choices, func(i, j int) bool {
		return qd.cache.choices[i].name < qd.cache.choices[j].name
	})
}
