package balancer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// assertPartition checks the structural guarantees every packing must honour:
// container count, weight conservation, and that the multiset of item weights
// survives intact (nothing lost, nothing duplicated).
func assertPartition(t *testing.T, items []Item, containers []*Container, containerCount int) {
	t.Helper()

	require.Len(t, containers, containerCount)

	wantTotal := 0
	wantCounts := make(map[int]int, len(items))
	for _, item := range items {
		wantTotal += item.Weight()
		wantCounts[item.Weight()]++
	}

	gotTotal := 0
	gotCounts := make(map[int]int, len(items))
	for _, c := range containers {
		gotTotal += c.TotalWeight()
		for _, w := range c.ItemWeights() {
			gotCounts[w]++
		}
	}

	require.Equal(t, wantTotal, gotTotal)
	require.Equal(t, wantCounts, gotCounts)
}

func sortedTotals(containers []*Container) []int {
	totals := make([]int, len(containers))
	for i, c := range containers {
		totals[i] = c.TotalWeight()
	}
	return totals
}

func TestPackRejectsInvalidContainerCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, -1} {
		_, err := New().Pack(mustItems(t, 100), count)
		require.ErrorIs(t, err, ErrInvalidContainerCount)
	}
}

func TestPackEmptyItems(t *testing.T) {
	t.Parallel()

	containers, err := New().Pack(nil, 3)
	require.NoError(t, err)
	require.Len(t, containers, 3)
	for _, c := range containers {
		require.Zero(t, c.TotalWeight())
		require.Empty(t, c.Items())
	}
}

func TestPackSingleContainerHoldsEverything(t *testing.T) {
	t.Parallel()

	items := mustItems(t, 400, 500, 600)
	containers, err := New().Pack(items, 1)
	require.NoError(t, err)
	require.Len(t, containers, 1)
	require.Equal(t, 1500, containers[0].TotalWeight())
	assertPartition(t, items, containers, 1)
}

func TestPackKnownScenario(t *testing.T) {
	t.Parallel()

	items := mustItems(t, 900, 800, 700, 600, 500)

	containers, err := New().Pack(items, 2)
	require.NoError(t, err)
	assertPartition(t, items, containers, 2)

	// The differencing sequence for this input settles on totals 1900/1600;
	// results are returned heaviest first.
	require.Equal(t, []int{1900, 1600}, sortedTotals(containers))
	require.Equal(t, 300, Spread(containers))

	greedyContainers, err := NewGreedy().Pack(items, 2)
	require.NoError(t, err)
	require.LessOrEqual(t, Spread(containers), Spread(greedyContainers))
}

func TestPackReturnsContainersHeaviestFirst(t *testing.T) {
	t.Parallel()

	items := mustItems(t, 120, 340, 560, 780, 910, 230, 450)
	containers, err := New().Pack(items, 3)
	require.NoError(t, err)
	assertPartition(t, items, containers, 3)

	for i := 1; i < len(containers); i++ {
		require.GreaterOrEqual(t, containers[i-1].TotalWeight(), containers[i].TotalWeight())
	}
}

func TestPackMoreContainersThanItems(t *testing.T) {
	t.Parallel()

	items := mustItems(t, 700, 300)
	containers, err := New().Pack(items, 4)
	require.NoError(t, err)
	assertPartition(t, items, containers, 4)
	require.Equal(t, []int{700, 300, 0, 0}, sortedTotals(containers))
}

func TestPackIsDeterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	weights := make([]int, 40)
	for i := range weights {
		weights[i] = rng.Intn(901) + 100
	}
	items, err := NewItems(weights)
	require.NoError(t, err)

	first, err := New().Pack(items, 4)
	require.NoError(t, err)
	second, err := New().Pack(items, 4)
	require.NoError(t, err)

	require.Equal(t, sortedTotals(first), sortedTotals(second))
}

func TestPackBeatsGreedyOnSeededInputs(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	cases := []struct {
		name           string
		itemCount      int
		containerCount int
	}{
		{name: "SmallTwoWay", itemCount: 20, containerCount: 2},
		{name: "MediumThreeWay", itemCount: 35, containerCount: 3},
		{name: "MediumFourWay", itemCount: 28, containerCount: 4},
		{name: "LargeFiveWay", itemCount: 50, containerCount: 5},
	}

	for _, tc := range cases {
		weights := make([]int, tc.itemCount)
		for i := range weights {
			weights[i] = rng.Intn(901) + 100
		}

		t.Run(tc.name, func(t *testing.T) {
			items, err := NewItems(weights)
			require.NoError(t, err)

			ldmContainers, err := New().Pack(items, tc.containerCount)
			require.NoError(t, err)
			assertPartition(t, items, ldmContainers, tc.containerCount)

			greedyContainers, err := NewGreedy().Pack(items, tc.containerCount)
			require.NoError(t, err)
			assertPartition(t, items, greedyContainers, tc.containerCount)

			require.LessOrEqual(t, Spread(ldmContainers), Spread(greedyContainers),
				"differencing should not lose to the greedy baseline")
		})
	}
}

func TestSpread(t *testing.T) {
	t.Parallel()

	require.Zero(t, Spread(nil))
	require.Zero(t, Spread([]*Container{NewContainer(nil)}))

	containers := []*Container{
		NewContainer(mustItems(t, 900)),
		NewContainer(mustItems(t, 400)),
		NewContainer(mustItems(t, 650)),
	}
	require.Equal(t, 500, Spread(containers))
}
