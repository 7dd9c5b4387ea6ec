package domain

// CacheKey identifies one precomputed window of a region.
// It is a comparable value type: two keys built from equal parts are the same map key.
type CacheKey struct {
	SortKey     SortKey
	Direction   Direction
	WindowStart int // non-negative multiple of the window size
}

// Window is a sorted, contiguous block of at most W records starting at its CacheKey.WindowStart.
// Records must be treated as read-only by every holder.
type Window struct {
	Records []InstanceRecord
	Tick    uint64 // recency tick of the last Set or Get
}
