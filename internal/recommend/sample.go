package recommend

// Sample draws min(k, len(pool)) distinct elements of pool uniformly at
// random using a partial Fisher-Yates shuffle over an index array. pool is
// never modified. intn must return a uniform value in [0, n).
func Sample[T any](pool []T, k int, intn func(n int) int) []T {
	n := len(pool)
	if k > n {
		k = n
	}
	if k <= 0 {
		return []T{}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	out := make([]T, 0, k)
	for i := 0; i < k; i++ {
		j := i + intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, pool[idx[i]])
	}
	return out
}
