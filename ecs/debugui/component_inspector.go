package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tanks/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of the selected entity. Edits are written
// straight into the storage.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = selected

	if ci.selectedEntity == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !storage.Alive(ci.selectedEntity) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Mask: 0x%X", uint64(storage.Mask(ci.selectedEntity))))
	imgui.Separator()

	for _, component := range storage.Components(ci.selectedEntity) {
		val := reflect.ValueOf(component).Elem()
		if imgui.TreeNodeStr(val.Type().String()) {
			ci.renderStruct(val)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderStruct(val reflect.Value) {
	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(tag)")
		return
	}
	for _, field := range fields {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

// renderField draws one value. val must be addressable for edits to stick.
func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value) {
	label := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		if val.Len() <= 4 && isFloat(val.Type().Elem().Kind()) {
			for i := range val.Len() {
				ci.renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
			}
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Pointer:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		if val.Elem().Kind() == reflect.Struct && imgui.TreeNodeStr(name) {
			ci.renderStruct(val.Elem())
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
