package seq

// BuildMap returns a map from i to i+1 for every i in [0, n), inserted in
// ascending key order without a size hint. n <= 0 yields an empty map.
func BuildMap(n int) map[int64]int64 {
	m := make(map[int64]int64)
	for i := 0; i < n; i++ {
		m[int64(i)] = int64(i) + 1
	}
	return m
}

// SumMap looks up keys 0..n-1 in m and adds the values found.
// Missing keys contribute zero.
func SumMap(m map[int64]int64, n int) int64 {
	var sum int64
	for i := 0; i < n; i++ {
		sum += m[int64(i)]
	}
	return sum
}
