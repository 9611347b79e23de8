package dtypes

import (
	"fmt"
	"slices"
	"strings"
)

type Set[E comparable] map[E]struct{}

func MakeFromSlice[E comparable](slice []E) Set[E] {
	S := Set[E]{}
	for _, v := range slice {
		S.Add(v)
	}
	return S
}

// String lists the elements in sorted order of their printed forms.
func (S Set[E]) String() string {
	elements := []string{}
	for e := range S {
		elements = append(elements, fmt.Sprintf("%v", e))
	}
	slices.Sort(elements)
	return "{" + strings.Join(elements, ", ") + "}"
}

func (S Set[E]) Add(e E) {
	S[e] = struct{}{}
}

func (S Set[E]) Contains(e E) bool {
	_, found := S[e]
	return found
}
