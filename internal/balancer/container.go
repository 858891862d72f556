package balancer

// Container aggregates items and caches their summed weight. The cached total
// is updated incrementally on every mutation and never recomputed afterwards.
type Container struct {
	items       []Item
	totalWeight int
}

// NewContainer builds a container holding the given items, summing their
// weights once. The container takes ownership of the slice. A nil or empty
// slice yields an empty container with total weight zero.
func NewContainer(items []Item) *Container {
	total := 0
	for _, item := range items {
		total += item.Weight()
	}
	return &Container{items: items, totalWeight: total}
}

// Add appends one item and bumps the cached total.
func (c *Container) Add(item Item) {
	c.items = append(c.items, item)
	c.totalWeight += item.Weight()
}

// TotalWeight returns the cached sum of the contained items' weights.
func (c *Container) TotalWeight() int {
	return c.totalWeight
}

// Items returns a defensive copy of the contained items.
func (c *Container) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemWeights returns the weights of the contained items, in insertion order.
func (c *Container) ItemWeights() []int {
	weights := make([]int, len(c.items))
	for i, item := range c.items {
		weights[i] = item.Weight()
	}
	return weights
}

// Less orders containers by total weight, ascending. Used only to break ties
// when containers participate in an ordered structure.
func (c *Container) Less(other *Container) bool {
	return c.totalWeight < other.totalWeight
}

// Combine returns a new container holding the contents of both operands, with
// the totals summed instead of recomputed. Neither operand is mutated.
func Combine(a, b *Container) *Container {
	items := make([]Item, 0, len(a.items)+len(b.items))
	items = append(items, a.items...)
	items = append(items, b.items...)
	return &Container{items: items, totalWeight: a.totalWeight + b.totalWeight}
}
