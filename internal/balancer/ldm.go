package balancer

import (
	"fmt"
	"sort"

	"github.com/oleiade/lane/v2"
)

type ldmStrategy struct{}

// New creates a Strategy based on the largest differencing method.
func New() Strategy {
	return &ldmStrategy{}
}

func (s *ldmStrategy) Pack(items []Item, containerCount int) ([]*Container, error) {
	if containerCount < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidContainerCount, containerCount)
	}
	if len(items) == 0 {
		return emptyContainers(containerCount), nil
	}
	if containerCount == 1 {
		all := make([]Item, len(items))
		copy(all, items)
		return []*Container{NewContainer(all)}, nil
	}
	return packLargestDifferencing(items, containerCount), nil
}

// packLargestDifferencing approximates a solution to the multiway number
// partitioning problem.
//
// Every item seeds a candidate packing of containerCount containers, with the
// item alone in the first container. Candidates live in a max-oriented
// priority queue keyed by their imbalance (heaviest total minus lightest
// total), so the most unbalanced candidate always pops first; this replaces
// the classical trick of feeding negated scores to a min-heap. The two worst
// candidates are merged until a single packing survives.
//
// Invariant: containers inside every queued candidate are sorted by total
// weight in descending order. The pairing step in merge depends on it.
func packLargestDifferencing(items []Item, containerCount int) []*Container {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight() > sorted[j].Weight()
	})

	queue := lane.NewMaxPriorityQueue[[]*Container, int]()
	for _, item := range sorted {
		containers := emptyContainers(containerCount)
		containers[0].Add(item)
		// A single loaded container followed by empty ones is already in
		// descending order, so the invariant holds without sorting.
		queue.Push(containers, imbalance(containers))
	}

	for queue.Size() > 1 {
		worst, _, _ := queue.Pop()
		next, _, _ := queue.Pop()
		merged := merge(worst, next)
		queue.Push(merged, imbalance(merged))
	}

	final, _, _ := queue.Pop()
	return final
}

// merge combines two candidate packings by pairing the i-th heaviest
// container of the first with the i-th lightest container of the second,
// offsetting the largest burden of one packing with the smallest of the
// other. Both inputs must be sorted by total weight in descending order; the
// result is re-sorted to restore that invariant.
func merge(a, b []*Container) []*Container {
	merged := make([]*Container, len(a))
	for i, container := range a {
		merged[i] = Combine(container, b[len(b)-1-i])
	}
	sortByWeightDescending(merged)
	return merged
}

// imbalance scores a candidate packing. Containers must be sorted descending,
// so the extremes sit at the ends of the slice.
func imbalance(containers []*Container) int {
	return containers[0].TotalWeight() - containers[len(containers)-1].TotalWeight()
}

func emptyContainers(count int) []*Container {
	containers := make([]*Container, count)
	for i := range containers {
		containers[i] = NewContainer(nil)
	}
	return containers
}

func sortByWeightDescending(containers []*Container) {
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[j].Less(containers[i])
	})
}
