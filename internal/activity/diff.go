package activity

import "strings"

// listDiff computes an order-insensitive set difference between two string
// lists. Reordering alone produces no diff.
func listDiff(prev, cur []string) (added, removed []string) {
	prevSet := make(map[string]bool, len(prev))
	for _, v := range prev {
		prevSet[v] = true
	}
	curSet := make(map[string]bool, len(cur))
	for _, v := range cur {
		curSet[v] = true
	}
	for _, v := range cur {
		if !prevSet[v] {
			added = append(added, v)
		}
	}
	for _, v := range prev {
		if !curSet[v] {
			removed = append(removed, v)
		}
	}
	return added, removed
}

// textChanged compares free-text fields with nil/empty treated as equal.
func textChanged(prev, cur string) bool {
	return strings.TrimSpace(prev) != strings.TrimSpace(cur)
}
