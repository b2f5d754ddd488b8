package seq

// Build returns a slice holding 0..n-1 in index order. Elements are appended
// one at a time so the slice grows the same way any append-heavy caller
// would. n <= 0 yields an empty slice.
func Build(n int) []int64 {
	var s []int64
	for i := 0; i < n; i++ {
		s = append(s, int64(i))
	}
	return s
}

// Sum adds every element of s in a single forward pass.
func Sum(s []int64) int64 {
	var sum int64
	for _, v := range s {
		sum += v
	}
	return sum
}
