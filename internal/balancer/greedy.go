package balancer

import (
	"fmt"
	"sort"
)

type greedyStrategy struct{}

// NewGreedy creates a Strategy that places each item, heaviest first, into
// whichever container is currently lightest. It serves as a comparison
// baseline for the largest differencing method and is usually worse.
func NewGreedy() Strategy {
	return &greedyStrategy{}
}

func (s *greedyStrategy) Pack(items []Item, containerCount int) ([]*Container, error) {
	if containerCount < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidContainerCount, containerCount)
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight() > sorted[j].Weight()
	})

	containers := emptyContainers(containerCount)
	for _, item := range sorted {
		lightest := containers[0]
		for _, c := range containers[1:] {
			if c.Less(lightest) {
				lightest = c
			}
		}
		lightest.Add(item)
	}

	sortByWeightDescending(containers)
	return containers, nil
}
