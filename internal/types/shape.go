package types

// DedupeBy returns items with later duplicates of the same key removed.
// The first occurrence wins and order is preserved. The input is not modified.
func DedupeBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// RecipeID is the key function for de-duplicating recipes.
func RecipeID(r Recipe) string {
	return r.ID.String()
}
