package balancer

import "fmt"

// Item is an indivisible unit of positive weight, assigned to exactly one
// container. Immutable after construction.
type Item struct {
	weight int
}

// NewItem validates weight and returns an Item carrying it.
func NewItem(weight int) (Item, error) {
	if weight <= 0 {
		return Item{}, fmt.Errorf("%w, got %d", ErrInvalidWeight, weight)
	}
	return Item{weight: weight}, nil
}

// NewItems validates a batch of raw weights. It fails on the first invalid
// weight, so callers never proceed with a partially validated set.
func NewItems(weights []int) ([]Item, error) {
	items := make([]Item, 0, len(weights))
	for _, weight := range weights {
		item, err := NewItem(weight)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Weight returns the item's weight.
func (i Item) Weight() int {
	return i.weight
}
