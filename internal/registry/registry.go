// Package registry holds the static catalogue of questionnaire component
// types: display name, default props and the editing capabilities each type
// exposes to the property panel.
package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"questionnaire/internal/domain"
)

// ErrUnknownComponentType is returned when a type tag has no registry entry.
var ErrUnknownComponentType = errors.New("unknown component type")

//go:embed components.yaml
var defaultTable []byte

// Capability names one property-editing feature of a component type.
type Capability string

const (
	CapabilityText        Capability = "text"
	CapabilityTitle       Capability = "title"
	CapabilityLevel       Capability = "level"
	CapabilityCenter      Capability = "center"
	CapabilityPlaceholder Capability = "placeholder"
	CapabilityOptions     Capability = "options"
	CapabilityVertical    Capability = "vertical"
	CapabilityRequired    Capability = "required"
)

// Entry describes one component type.
type Entry struct {
	Type         domain.ComponentType `json:"type" yaml:"type"`
	DisplayName  string               `json:"displayName" yaml:"displayName"`
	Group        string               `json:"group" yaml:"group"`
	Capabilities []Capability         `json:"capabilities" yaml:"capabilities"`
	DefaultProps domain.Props         `json:"defaultProps" yaml:"defaultProps"`
}

// Has reports whether the entry exposes capability c.
func (e Entry) Has(c Capability) bool {
	for _, x := range e.Capabilities {
		if x == c {
			return true
		}
	}
	return false
}

// Group is one palette section.
type Group struct {
	ID    string                 `json:"id" yaml:"id"`
	Name  string                 `json:"name" yaml:"name"`
	Types []domain.ComponentType `json:"types" yaml:"-"`
}

type table struct {
	Groups     []Group `yaml:"groups"`
	Components []Entry `yaml:"components"`
}

// Registry is an immutable lookup table. It is safe for concurrent use.
type Registry struct {
	entries map[domain.ComponentType]Entry
	order   []domain.ComponentType
	groups  []Group
}

// Load parses a YAML component table.
func Load(data []byte) (*Registry, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse component table: %w", err)
	}

	r := &Registry{entries: make(map[domain.ComponentType]Entry, len(t.Components))}
	groupIndex := make(map[string]int, len(t.Groups))
	for i, g := range t.Groups {
		if _, dup := groupIndex[g.ID]; dup {
			return nil, fmt.Errorf("component table: duplicate group %q", g.ID)
		}
		groupIndex[g.ID] = i
		r.groups = append(r.groups, Group{ID: g.ID, Name: g.Name})
	}

	for _, e := range t.Components {
		if e.Type == "" {
			return nil, fmt.Errorf("component table: entry with empty type")
		}
		if _, dup := r.entries[e.Type]; dup {
			return nil, fmt.Errorf("component table: duplicate registration for type %q", e.Type)
		}
		if e.DefaultProps == nil {
			e.DefaultProps = domain.Props{}
		}
		r.entries[e.Type] = e
		r.order = append(r.order, e.Type)
		if e.Group != "" {
			gi, ok := groupIndex[e.Group]
			if !ok {
				return nil, fmt.Errorf("component table: type %q names undeclared group %q", e.Type, e.Group)
			}
			r.groups[gi].Types = append(r.groups[gi].Types, e.Type)
		}
	}
	return r, nil
}

// LoadFile reads a YAML component table from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read component table: %w", err)
	}
	return Load(data)
}

// Default returns the built-in component table.
func Default() *Registry {
	r, err := Load(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("registry: embedded component table: %v", err))
	}
	return r
}

// Lookup returns the entry for t. The returned default props are a copy.
func (r *Registry) Lookup(t domain.ComponentType) (Entry, bool) {
	e, ok := r.entries[t]
	if !ok {
		return Entry{}, false
	}
	e.DefaultProps = e.DefaultProps.Clone()
	e.Capabilities = append([]Capability(nil), e.Capabilities...)
	return e, true
}

// Known reports whether t has an entry.
func (r *Registry) Known(t domain.ComponentType) bool {
	_, ok := r.entries[t]
	return ok
}

// Entries returns every entry in table order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, t := range r.order {
		e, _ := r.Lookup(t)
		out = append(out, e)
	}
	return out
}

// Groups returns the palette sections in table order.
func (r *Registry) Groups() []Group {
	out := make([]Group, len(r.groups))
	for i, g := range r.groups {
		g.Types = append([]domain.ComponentType(nil), g.Types...)
		out[i] = g
	}
	return out
}

// NewInstance builds a component of type t with props seeded from the
// defaults and the display name as its title.
func (r *Registry) NewInstance(t domain.ComponentType, id string) (domain.ComponentInstance, error) {
	e, ok := r.Lookup(t)
	if !ok {
		return domain.ComponentInstance{}, fmt.Errorf("%w: %q", ErrUnknownComponentType, t)
	}
	return domain.ComponentInstance{
		ID:    id,
		Type:  t,
		Title: e.DisplayName,
		Props: e.DefaultProps,
	}, nil
}
