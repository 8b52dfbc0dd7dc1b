package test

import (
	"fmt"

	"go.uber.org/mock/gomock"
)

type predicate[T any] struct {
	match func(T) bool
	last  interface{}
}

func (p *predicate[T]) Matches(x interface{}) bool {
	p.last = x
	v, ok := x.(T)
	return ok && p.match(v)
}

func (p *predicate[T]) String() string {
	var zero T
	if p.last == nil {
		return fmt.Sprintf("is a %T satisfying the predicate", zero)
	}
	return fmt.Sprintf("is a %T satisfying the predicate, last got %+v", zero, p.last)
}

// Match builds a gomock matcher from a predicate over the argument type. Arguments
// of another type never match.
func Match[T any](m func(v T) bool) gomock.Matcher {
	return &predicate[T]{match: m}
}
