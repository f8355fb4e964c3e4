package service

import (
	"sort"
)

// StringSet is a set of strings (all elements are unique)
type StringSet map[string]struct{}

// NewStringSet creates a StringSet from the given elements
func NewStringSet(elements ...string) StringSet {
	ss := StringSet{}
	for _, e := range elements {
		ss.Push(e)
	}
	return ss
}

// Push adds the string to the set if not already exists
func (ss StringSet) Push(s string) {
	ss[s] = struct{}{}
}

// Pop removes the string from the set
func (ss StringSet) Pop(s string) {
	delete(ss, s)
}

// Slice returns a slice from the set
func (ss StringSet) Slice() []string {
	sl := make([]string, 0, len(ss))
	for k := range ss {
		sl = append(sl, k)
	}
	return sl
}

// SortedSlice returns a sorted slice from the set
func (ss StringSet) SortedSlice() []string {
	sl := ss.Slice()
	sort.Strings(sl)
	return sl
}

// Exists returns true if the string already exists in the Set
func (ss StringSet) Exists(s string) bool {
	_, ok := ss[s]
	return ok
}
