package dtypes

type Stack[T any] struct {
	vals []T
}

func NewStack[T any]() *Stack[T] { return &Stack[T]{vals: []T{}} }

func (s *Stack[T]) Push(val T) {
	s.vals = append(s.vals, val)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) HeadValue() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	return s.vals[len(s.vals)-1], true
}

// Replaces the top of the stack. Does nothing on an empty stack.
func (s *Stack[T]) SetHead(val T) {
	if len(s.vals) > 0 {
		s.vals[len(s.vals)-1] = val
	}
}

func (s *Stack[T]) Len() int {
	return len(s.vals)
}

// Find returns how many levels down from the top the first element satisfying the predicate
// is, or -1.
func (s *Stack[T]) Find(match func(T) bool) int {
	level := -1
	for i := len(s.vals) - 1; i >= 0; i-- {
		level++
		if match(s.vals[i]) {
			return level
		}
	}
	return -1
}
