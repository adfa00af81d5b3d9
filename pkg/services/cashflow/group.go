package cashflow

import (
	"fmt"
	"slices"
)

// Group is an ordered, name-unique collection of items. It owns its
// items exclusively: removing an item drops the group's only reference
// to it.
type Group struct {
	Name string
	Desc string

	items []*Item
}

// NewGroup creates a group. Each call allocates a fresh item list.
func NewGroup(name, desc string, items ...*Item) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name must not be empty")
	}
	g := &Group{Name: name, Desc: desc, items: make([]*Item, 0, len(items))}
	if err := g.AddItems(items...); err != nil {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}
	return g, nil
}

// AddItems appends items in order. Nil items are rejected, as is any
// item whose name is already taken in the group or earlier in the
// batch; on error the group is left unchanged.
func (g *Group) AddItems(items ...*Item) error {
	seen := make(map[string]struct{}, len(g.items)+len(items))
	for _, it := range g.items {
		seen[it.Name] = struct{}{}
	}
	for _, it := range items {
		if it == nil {
			return fmt.Errorf("item must not be nil")
		}
		if _, ok := seen[it.Name]; ok {
			return fmt.Errorf("item %q: %w", it.Name, ErrDuplicateName)
		}
		seen[it.Name] = struct{}{}
	}
	g.items = append(g.items, items...)
	return nil
}

// Items returns the items matching the given names, in group order.
func (g *Group) Items(names ...string) []*Item {
	var out []*Item
	for _, it := range g.items {
		if slices.Contains(names, it.Name) {
			out = append(out, it)
		}
	}
	return out
}

// AllItems returns a copy of the ordered item list.
func (g *Group) AllItems() []*Item {
	return slices.Clone(g.items)
}

// RemoveItems drops every item whose name is in the given set. Names
// with no match are ignored.
func (g *Group) RemoveItems(names ...string) {
	g.items = slices.DeleteFunc(g.items, func(it *Item) bool {
		return slices.Contains(names, it.Name)
	})
}

// ItemNames returns the item names in order.
func (g *Group) ItemNames() []string {
	names := make([]string, len(g.items))
	for i, it := range g.items {
		names[i] = it.Name
	}
	return names
}

// SampleUpfrontCosts draws one upfront cost per item, in order.
func (g *Group) SampleUpfrontCosts() []float64 {
	costs := make([]float64, len(g.items))
	for i, it := range g.items {
		costs[i] = it.SampleUpfrontCost()
	}
	return costs
}

// SampleRecurringCosts draws one recurring cost per item for the given
// year, in order.
func (g *Group) SampleRecurringCosts(year int) []float64 {
	costs := make([]float64, len(g.items))
	for i, it := range g.items {
		costs[i] = it.SampleRecurringCost(year)
	}
	return costs
}
