// Package listbench measures container construction and iteration cost.
//
// Example usage:
//
//	res := listbench.Run(listbench.List, 1_000_000, true, nil)
//	fmt.Println(res.Len, res.Sum, res.BuildTime)
//
// The listbench command wraps Run with argument parsing; see cmd/listbench.
package listbench

import (
	"github.com/bft-labs/listbench/internal/bench"
	"github.com/bft-labs/listbench/pkg/log"
)

// Workload names a container to exercise.
type Workload = bench.Workload

// Result describes a finished run: the built length, the sum when one was
// computed, and the time spent in each phase.
type Result = bench.Result

// Available workloads.
const (
	List = bench.List
	Map  = bench.Map
)

// Run builds the workload's container with n elements and sums it when sum
// is true. A nil logger discards log output.
func Run(w Workload, n int, sum bool, logger log.Logger) Result {
	return bench.Run(w, n, sum, logger)
}

// ParseWorkload converts "list" or "map" to a Workload.
func ParseWorkload(s string) (Workload, error) {
	return bench.ParseWorkload(s)
}
