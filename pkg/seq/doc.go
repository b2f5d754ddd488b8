// Package seq holds the container workloads measured by listbench.
//
// Each workload has a builder that grows a container one element at a time
// and a reducer that walks it once with a running 64-bit sum.
//
// # List
//
//	s := seq.Build(5) // [0 1 2 3 4]
//	_ = seq.Sum(s)     // 10
//
// # Map
//
//	m := seq.BuildMap(5) // {0:1 1:2 2:3 3:4 4:5}
//	_ = seq.SumMap(m, 5) // 15
//
// Sums use int64 arithmetic and wrap silently on overflow.
package seq
