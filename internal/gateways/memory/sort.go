package memory

import "sort"

func sortNewest[T any](list []T, key func(T) int64) {
	sort.SliceStable(list, func(i, j int) bool { return key(list[i]) > key(list[j]) })
}

func sortOldest[T any](list []T, key func(T) int64) {
	sort.SliceStable(list, func(i, j int) bool { return key(list[i]) < key(list[j]) })
}
