package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPrintsBothStrategies(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(&out, 35, 3, 100, 1000, 42); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	report := out.String()
	for _, want := range []string{
		"--- Greedy algorithm ---",
		"--- Largest differencing method ---",
		"Spread improvement over greedy:",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, report)
		}
	}
}

func TestRunIsReproducibleForFixedSeed(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	if err := run(&first, 20, 2, 100, 1000, 7); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if err := run(&second, 20, 2, 100, 1000, 7); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	if first.String() != second.String() {
		t.Fatalf("expected identical reports for the same seed")
	}
}

func TestRunRejectsInvalidArguments(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(&out, 0, 2, 100, 1000, 42); err == nil {
		t.Fatalf("expected error for zero items")
	}
	if err := run(&out, 10, 2, 500, 100, 42); err == nil {
		t.Fatalf("expected error for inverted weight range")
	}
	if err := run(&out, 10, 0, 100, 1000, 42); err == nil {
		t.Fatalf("expected error for zero containers")
	}
}
