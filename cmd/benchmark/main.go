package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/parceldyn/shipment-balancer/internal/balancer"
)

func main() {
	app := kingpin.New("balance-benchmark", "Compares the largest differencing method against the greedy baseline on randomly generated shipments")
	itemCount := app.Flag("items", "Number of items to generate").Default("35").Int()
	containerCount := app.Flag("containers", "Number of containers to fill").Default("3").Int()
	minWeight := app.Flag("min-weight", "Smallest item weight").Default("100").Int()
	maxWeight := app.Flag("max-weight", "Largest item weight").Default("1000").Int()
	seed := app.Flag("seed", "Random seed; keep fixed for reproducible runs").Default("42").Int64()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(os.Stdout, *itemCount, *containerCount, *minWeight, *maxWeight, *seed); err != nil {
		app.Fatalf("%v", err)
	}
}

// run generates a seeded random shipment, packs it with both strategies, and
// prints the distributions side by side.
func run(out io.Writer, itemCount, containerCount, minWeight, maxWeight int, seed int64) error {
	if itemCount < 1 {
		return fmt.Errorf("items must be >= 1, got %d", itemCount)
	}
	if minWeight < 1 || maxWeight < minWeight {
		return fmt.Errorf("invalid weight range [%d, %d]", minWeight, maxWeight)
	}

	rng := rand.New(rand.NewSource(seed))
	weights := make([]int, itemCount)
	for i := range weights {
		weights[i] = rng.Intn(maxWeight-minWeight+1) + minWeight
	}

	items, err := balancer.NewItems(weights)
	if err != nil {
		return fmt.Errorf("generate items: %w", err)
	}

	greedyContainers, err := balancer.NewGreedy().Pack(items, containerCount)
	if err != nil {
		return fmt.Errorf("greedy pack: %w", err)
	}
	ldmContainers, err := balancer.New().Pack(items, containerCount)
	if err != nil {
		return fmt.Errorf("differencing pack: %w", err)
	}

	printReport(out, "Greedy algorithm", greedyContainers)
	printReport(out, "Largest differencing method", ldmContainers)

	savings := balancer.Spread(greedyContainers) - balancer.Spread(ldmContainers)
	fmt.Fprintf(out, "Spread improvement over greedy: %d\n", savings)
	return nil
}

func printReport(out io.Writer, title string, containers []*balancer.Container) {
	fmt.Fprintf(out, "--- %s ---\n", title)
	for i, c := range containers {
		fmt.Fprintf(out, "container %d | total %d | items: %s\n", i+1, c.TotalWeight(), joinWeights(c.ItemWeights()))
	}
	fmt.Fprintf(out, "Difference between heaviest and lightest container: %d\n\n", balancer.Spread(containers))
}

func joinWeights(weights []int) string {
	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ", ")
}
