package recommend

import (
	"sort"
	"strings"
)

// Label is a normalized classification tag such as a diet, category,
// cuisine type or allergen.
type Label string

// NewLabel normalizes s. Matching is case-insensitive and ignores
// surrounding whitespace.
func NewLabel(s string) Label {
	return Label(strings.ToLower(strings.TrimSpace(s)))
}

// LabelSet is an unordered set of labels. The zero value is an empty set
// ready for reads; use NewLabelSet or Add to populate it.
type LabelSet map[Label]struct{}

// NewLabelSet builds a set from raw strings, dropping blanks.
func NewLabelSet(values ...string) LabelSet {
	s := make(LabelSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v after normalization. Blank values are ignored.
func (s LabelSet) Add(v string) {
	l := NewLabel(v)
	if l == "" {
		return
	}
	s[l] = struct{}{}
}

// Has reports whether v is in the set.
func (s LabelSet) Has(v string) bool {
	_, ok := s[NewLabel(v)]
	return ok
}

// Len returns the number of labels.
func (s LabelSet) Len() int {
	return len(s)
}

// Intersects reports whether s and o share at least one label.
func (s LabelSet) Intersects(o LabelSet) bool {
	small, large := s, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for l := range small {
		if _, ok := large[l]; ok {
			return true
		}
	}
	return false
}

// Union returns a new set holding the labels of s and every set in others.
func (s LabelSet) Union(others ...LabelSet) LabelSet {
	out := make(LabelSet, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	for _, o := range others {
		for l := range o {
			out[l] = struct{}{}
		}
	}
	return out
}

// Merge adds every label of o to s in place.
func (s LabelSet) Merge(o LabelSet) {
	for l := range o {
		s[l] = struct{}{}
	}
}

// Strings returns the labels in sorted order.
func (s LabelSet) Strings() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}
