package store

// Chunk splits ids into groups of at most size elements, preserving order.
// Used to keep "value in set" queries under the store's MaxInFilter ceiling;
// callers concatenate the per-chunk results and re-sort, since ordering
// across chunks is not guaranteed by the store.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	return append(chunks, items)
}
