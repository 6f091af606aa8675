package domain

import "sort"

// SortByStart orders suggestions by StartIndex ascending, ties by id.
func SortByStart(list []Suggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].StartIndex != list[j].StartIndex {
			return list[i].StartIndex < list[j].StartIndex
		}
		return list[i].ID < list[j].ID
	})
}
