// Package cashflow models a capital-investment scenario as an ordered
// hierarchy of cost lines: items carry cost distributions, groups own
// items, and a sheet owns groups. Sampling flows strictly upward; the
// only aggregation is the sheet's net cash-flow reduction.
package cashflow

import (
	"errors"
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/services/dist"
)

// ErrDuplicateName is returned when adding an element whose name is
// already taken within its collection.
var ErrDuplicateName = errors.New("duplicate name")

// Item is one named cost line with an upfront and a recurring cost
// distribution. An item is owned exclusively by its containing group.
type Item struct {
	Name string
	Desc string

	upfront   dist.Distribution
	recurring dist.Distribution
}

// NewItem creates an item. Costs accept a dist.Distribution or a plain
// number (coerced to a Constant with the default window); anything else
// is rejected. Nil costs default to Constant(0).
func NewItem(name, desc string, upfront, recurring any) (*Item, error) {
	if name == "" {
		return nil, fmt.Errorf("item name must not be empty")
	}
	it := &Item{Name: name, Desc: desc}
	if err := it.SetUpfrontCost(upfront); err != nil {
		return nil, fmt.Errorf("item %q: %w", name, err)
	}
	if err := it.SetRecurringCost(recurring); err != nil {
		return nil, fmt.Errorf("item %q: %w", name, err)
	}
	return it, nil
}

// SetUpfrontCost replaces the upfront cost, applying the same coercion
// rules as NewItem.
func (it *Item) SetUpfrontCost(cost any) error {
	d, err := AsCost(cost)
	if err != nil {
		return fmt.Errorf("upfront cost: %w", err)
	}
	it.upfront = d
	return nil
}

// SetRecurringCost replaces the recurring cost, applying the same
// coercion rules as NewItem.
func (it *Item) SetRecurringCost(cost any) error {
	d, err := AsCost(cost)
	if err != nil {
		return fmt.Errorf("recurring cost: %w", err)
	}
	it.recurring = d
	return nil
}

// UpfrontCost returns the upfront cost distribution.
func (it *Item) UpfrontCost() dist.Distribution { return it.upfront }

// RecurringCost returns the recurring cost distribution.
func (it *Item) RecurringCost() dist.Distribution { return it.recurring }

// SampleUpfrontCost draws the upfront cost. Upfront costs are incurred
// at year 0 by definition.
func (it *Item) SampleUpfrontCost() float64 {
	return it.upfront.Sample(0)
}

// SampleRecurringCost draws the recurring cost for the given year.
func (it *Item) SampleRecurringCost(year int) float64 {
	return it.recurring.Sample(year)
}

// AsCost coerces a cost value into a distribution. Distributions pass
// through; float64 and int wrap into a Constant with the default
// window; nil becomes Constant(0); any other type is rejected.
func AsCost(cost any) (dist.Distribution, error) {
	switch v := cost.(type) {
	case nil:
		return dist.NewConstant(0), nil
	case dist.Distribution:
		return v, nil
	case float64:
		return dist.NewConstant(v), nil
	case int:
		return dist.NewConstant(float64(v)), nil
	default:
		return nil, fmt.Errorf("cost must be a distribution or a number, got %T", cost)
	}
}
