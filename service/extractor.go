package service

import (
	"cmp"
	"slices"

	"myinventory/domain"
)

// insertionThreshold is the range length below which selection falls back to insertion sort.
const insertionThreshold = 12

// positionComparator orders record positions by (sortKey, direction) and then by fetch position,
// which makes the order total. With SortKeyNone it is the fetch order itself.
func positionComparator(records []domain.InstanceRecord, sortKey domain.SortKey, direction domain.Direction) func(a, b int) int {
	return func(a, b int) int {
		if c := domain.CompareField(&records[a], &records[b], sortKey, direction); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}
}

// ExtractWindow returns records [windowStart, windowStart+size) of the collection ordered by
// (sortKey, direction) without sorting the whole collection: one selection pass drops everything
// ranked before the window, a second one drops everything ranked after it, and only the window
// itself is sorted. Expected cost is O(N + size*log(size)).
//
// records is only read. The result holds copies of the record values.
func ExtractWindow(records []domain.InstanceRecord, sortKey domain.SortKey, direction domain.Direction, windowStart, size int) []domain.InstanceRecord {
	n := len(records)
	if n == 0 || windowStart >= n || size <= 0 {
		return []domain.InstanceRecord{}
	}

	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	compare := positionComparator(records, sortKey, direction)

	if windowStart > 0 {
		selectKth(positions, windowStart-1, 0, n-1, compare)
	}
	end := min(windowStart+size, n)
	if end < n {
		selectKth(positions, end-1, windowStart, n-1, compare)
	}

	window := positions[windowStart:end]
	slices.SortFunc(window, compare)

	out := make([]domain.InstanceRecord, len(window))
	for i, p := range window {
		out[i] = records[p]
	}
	return out
}

// selectKth rearranges s[lo..hi] so that s[k] holds the element of rank k, every element before it
// compares less or equal and every element after it compares greater or equal.
func selectKth[T any](s []T, k, lo, hi int, compare func(a, b T) int) {
	for hi > lo {
		if hi-lo < insertionThreshold {
			insertionSort(s, lo, hi, compare)
			return
		}
		p := partition(s, lo, hi, compare)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

// partition splits s[lo..hi] around a median-of-three pivot and returns the pivot's final index.
// Needs hi-lo >= 2.
func partition[T any](s []T, lo, hi int, compare func(a, b T) int) int {
	mid := lo + (hi-lo)/2
	if compare(s[mid], s[lo]) < 0 {
		s[mid], s[lo] = s[lo], s[mid]
	}
	if compare(s[hi], s[lo]) < 0 {
		s[hi], s[lo] = s[lo], s[hi]
	}
	if compare(s[hi], s[mid]) < 0 {
		s[hi], s[mid] = s[mid], s[hi]
	}
	// s[lo] <= s[mid] <= s[hi] now act as sentinels for the scans below.
	s[mid], s[hi-1] = s[hi-1], s[mid]
	pivot := s[hi-1]

	i, j := lo, hi-1
	for {
		i++
		for compare(s[i], pivot) < 0 {
			i++
		}
		j--
		for compare(s[j], pivot) > 0 {
			j--
		}
		if i >= j {
			break
		}
		s[i], s[j] = s[j], s[i]
	}
	s[i], s[hi-1] = s[hi-1], s[i]
	return i
}

func insertionSort[T any](s []T, lo, hi int, compare func(a, b T) int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && compare(s[j], s[j-1]) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
