package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tanks/ecs"
)

type StorageViewerCache struct {
	storages []ecs.ComponentStats
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache:         &StorageViewerCache{},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render lists every per-type storage. It returns the component id the
// user clicked this frame, if any.
func (sv *StorageViewerComponent) Render(storage *ecs.Storage) *ecs.ComponentID {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.rebuildCache(storage)

	maxRows := 0
	for _, cs := range sv.cache.storages {
		maxRows = max(maxRows, cs.Rows)
	}

	var clicked *ecs.ComponentID

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StorageTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Rows")
		imgui.TableSetupColumn("Holes")
		imgui.TableSetupColumn("Blocks")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortStorages()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, cs := range sv.cache.storages {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedID != nil && *sv.selectedID == cs.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", cs.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := cs.ID
				sv.selectedID = &id
				clicked = &id
			}

			imgui.TableNextColumn()
			imgui.Text(cs.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cs.Rows))
			if maxRows > 0 {
				barWidth := float32(cs.Rows) / float32(maxRows) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cs.Holes))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cs.Blocks))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StorageViewerComponent) rebuildCache(storage *ecs.Storage) {
	sv.cache.storages = storage.CollectStats().Components
	sv.sortStorages()
}

func (sv *StorageViewerComponent) sortStorages() {
	sort.SliceStable(sv.cache.storages, func(i, j int) bool {
		a, b := sv.cache.storages[i], sv.cache.storages[j]
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Name < b.Name
		case 3:
			less = a.Holes < b.Holes
		case 4:
			less = a.Blocks < b.Blocks
		default:
			less = a.Rows < b.Rows
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
}
