package models

// Ring is a fixed-capacity sequence that evicts its oldest element once full.
// The backing array is allocated once; Push never grows it.
type Ring[T any] struct {
	buf   []T
	start int
	size  int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// RingFrom builds a ring holding the newest capacity elements of items.
func RingFrom[T any](capacity int, items []T) *Ring[T] {
	r := NewRing[T](capacity)
	if len(items) > len(r.buf) {
		items = items[len(items)-len(r.buf):]
	}
	for _, v := range items {
		r.Push(v)
	}
	return r
}

func (r *Ring[T]) Push(v T) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Items returns a copy ordered oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *Ring[T]) Each(fn func(T)) {
	for i := 0; i < r.size; i++ {
		fn(r.buf[(r.start+i)%len(r.buf)])
	}
}
