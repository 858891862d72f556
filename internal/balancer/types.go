package balancer

// Strategy describes the behaviour required from a weight-balancing packer.
//
// Implementations must be deterministic: packing the same items into the same
// number of containers twice yields the same multiset of container weights.
type Strategy interface {
	Pack(items []Item, containerCount int) ([]*Container, error)
}

// Spread reports the difference between the heaviest and lightest container
// in a packing, the quantity the balancer minimises.
func Spread(containers []*Container) int {
	if len(containers) == 0 {
		return 0
	}
	lightest, heaviest := containers[0].TotalWeight(), containers[0].TotalWeight()
	for _, c := range containers[1:] {
		w := c.TotalWeight()
		if w < lightest {
			lightest = w
		}
		if w > heaviest {
			heaviest = w
		}
	}
	return heaviest - lightest
}
