package cashflow

import (
	"fmt"
	"slices"
)

// Sheet is the root of the cash-flow hierarchy: an ordered,
// name-unique collection of groups.
type Sheet struct {
	groups []*Group
}

// GroupNames pairs a group name with its ordered item names.
type GroupNames struct {
	Group string
	Items []string
}

// NewSheet creates a sheet. Each call allocates a fresh group list.
func NewSheet(groups ...*Group) (*Sheet, error) {
	s := &Sheet{groups: make([]*Group, 0, len(groups))}
	if err := s.AddGroups(groups...); err != nil {
		return nil, err
	}
	return s, nil
}

// AddGroups appends groups in order. Nil groups and duplicate group
// names are rejected; on error the sheet is left unchanged.
func (s *Sheet) AddGroups(groups ...*Group) error {
	seen := make(map[string]struct{}, len(s.groups)+len(groups))
	for _, g := range s.groups {
		seen[g.Name] = struct{}{}
	}
	for _, g := range groups {
		if g == nil {
			return fmt.Errorf("group must not be nil")
		}
		if _, ok := seen[g.Name]; ok {
			return fmt.Errorf("group %q: %w", g.Name, ErrDuplicateName)
		}
		seen[g.Name] = struct{}{}
	}
	s.groups = append(s.groups, groups...)
	return nil
}

// Groups returns the groups matching the given names, in sheet order.
func (s *Sheet) Groups(names ...string) []*Group {
	var out []*Group
	for _, g := range s.groups {
		if slices.Contains(names, g.Name) {
			out = append(out, g)
		}
	}
	return out
}

// AllGroups returns a copy of the ordered group list.
func (s *Sheet) AllGroups() []*Group {
	return slices.Clone(s.groups)
}

// RemoveGroups drops every group whose name is in the given set. Names
// with no match are ignored.
func (s *Sheet) RemoveGroups(names ...string) {
	s.groups = slices.DeleteFunc(s.groups, func(g *Group) bool {
		return slices.Contains(names, g.Name)
	})
}

// Names returns the group names paired with their item names, in order.
func (s *Sheet) Names() []GroupNames {
	names := make([]GroupNames, len(s.groups))
	for i, g := range s.groups {
		names[i] = GroupNames{Group: g.Name, Items: g.ItemNames()}
	}
	return names
}

// SampleUpfrontCosts draws one upfront cost per item across every
// group, preserving the group/item nesting.
func (s *Sheet) SampleUpfrontCosts() [][]float64 {
	costs := make([][]float64, len(s.groups))
	for i, g := range s.groups {
		costs[i] = g.SampleUpfrontCosts()
	}
	return costs
}

// SampleRecurringCosts draws one recurring cost per item across every
// group for the given year, preserving the group/item nesting.
func (s *Sheet) SampleRecurringCosts(year int) [][]float64 {
	costs := make([][]float64, len(s.groups))
	for i, g := range s.groups {
		costs[i] = g.SampleRecurringCosts(year)
	}
	return costs
}

// SampleCashFlow draws one full trial over the horizon. total has
// years+1 entries of per-group-per-item matrices: entry 0 holds
// upfront samples, entries 1..years hold recurring samples. net is the
// per-year sum over every leaf.
func (s *Sheet) SampleCashFlow(years int) (total [][][]float64, net []float64) {
	total = make([][][]float64, 0, years+1)
	total = append(total, s.SampleUpfrontCosts())
	for year := 1; year <= years; year++ {
		total = append(total, s.SampleRecurringCosts(year))
	}

	net = make([]float64, len(total))
	for t, matrix := range total {
		for _, row := range matrix {
			for _, v := range row {
				net[t] += v
			}
		}
	}
	return total, net
}
