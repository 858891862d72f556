// Package balancer distributes weighted items across a fixed number of
// containers so that the heaviest and lightest container end up as close in
// weight as possible (approximate multiway number partitioning). The primary
// strategy is the largest differencing method; a greedy baseline is provided
// for comparison.
package balancer
