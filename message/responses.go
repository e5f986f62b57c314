package message

import (
	"errors"
	"iter"
)

// ErrResponseNotAvailable is returned when removing a response from
// an empty Responses collection.
var ErrResponseNotAvailable = errors.New("message.Responses: no response available")

// Responses is the ordered collection of values contributed by the
// listeners handling a Message.
//
// Values can be consumed in push order (Shift) or in reverse order (Pop).
type Responses struct {
	values []any
}

// NewResponses returns an empty Responses collection.
func NewResponses() *Responses {
	return new(Responses)
}

// Push appends value to the collection. Nil values are ignored.
func (r *Responses) Push(value any) *Responses {
	if value != nil {
		r.values = append(r.values, value)
	}

	return r
}

// Shift removes and returns the first pushed value.
func (r *Responses) Shift() (any, error) {
	if len(r.values) == 0 {
		return nil, ErrResponseNotAvailable
	}

	value := r.values[0]
	r.values[0] = nil
	r.values = r.values[1:]

	return value, nil
}

// Pop removes and returns the last pushed value.
func (r *Responses) Pop() (any, error) {
	if len(r.values) == 0 {
		return nil, ErrResponseNotAvailable
	}

	last := len(r.values) - 1
	value := r.values[last]
	r.values[last] = nil
	r.values = r.values[:last]

	return value, nil
}

// IsEmpty reports whether the collection holds no value.
func (r *Responses) IsEmpty() bool { return len(r.values) == 0 }

// Len returns the number of values in the collection.
func (r *Responses) Len() int { return len(r.values) }

// All returns an iterator over the values, in push order.
func (r *Responses) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range r.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the values, in push order.
func (r *Responses) Slice() []any {
	if len(r.values) == 0 {
		return nil
	}

	values := make([]any, len(r.values))
	copy(values, r.values)

	return values
}
