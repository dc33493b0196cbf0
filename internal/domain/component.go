package domain

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

// ComponentType is the registry tag of a placed component.
type ComponentType string

const (
	ComponentTypeTitle     ComponentType = "questionTitle"
	ComponentTypeParagraph ComponentType = "questionParagraph"
	ComponentTypeInput     ComponentType = "questionInput"
	ComponentTypeTextarea  ComponentType = "questionTextarea"
	ComponentTypeRadio     ComponentType = "questionRadio"
	ComponentTypeCheckbox  ComponentType = "questionCheckbox"
)

// Props holds the type-specific configuration of a component.
// Values follow the JSON decoding shapes: scalars, []any and map[string]any.
// YAML input is normalized to the same shapes.
type Props map[string]any

// UnmarshalYAML decodes into a plain map so nested mappings come out as
// map[string]any, as they do from encoding/json, rather than as Props.
func (p *Props) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return err
	}
	*p = Props(m)
	return nil
}

// ComponentInstance is one placed question or element on the canvas.
type ComponentInstance struct {
	ID     string        `json:"fe_id" yaml:"fe_id"`
	Type   ComponentType `json:"type" yaml:"type"`
	Title  string        `json:"title" yaml:"title"`
	Hidden bool          `json:"isHidden,omitempty" yaml:"isHidden,omitempty"`
	Locked bool          `json:"isLocked,omitempty" yaml:"isLocked,omitempty"`
	Props  Props         `json:"props" yaml:"props"`
}

// Clone returns a deep copy of the instance. The copy shares no maps or
// slices with c.
func (c ComponentInstance) Clone() ComponentInstance {
	c.Props = c.Props.Clone()
	return c
}

// Clone returns a deep copy of p. A nil map stays nil.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = CloneValue(v)
	}
	return out
}

// Merge returns a copy of p with every key of patch written over it.
func (p Props) Merge(patch Props) Props {
	out := p.Clone()
	if out == nil {
		out = make(Props, len(patch))
	}
	for k, v := range patch {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies the container shapes produced by encoding/json and
// yaml.v3. Other slice and map types are copied element by element through
// reflection. Scalars, pointers and structs are returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = CloneValue(e)
		}
		return out
	case Props:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return cloneReflect(rv).Interface()
	}
	return v
}

func cloneReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneElem(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value()))
		}
		return out
	}
	return rv
}

func cloneElem(ev reflect.Value) reflect.Value {
	if ev.Kind() == reflect.Interface {
		if ev.IsNil() {
			return ev
		}
		return reflect.ValueOf(CloneValue(ev.Interface()))
	}
	return cloneReflect(ev)
}
