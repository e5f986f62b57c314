package dispatch

import (
	"iter"
	"slices"
	"sort"
)

type queueEntry struct {
	uid      UID
	priority int
}

// PriorityQueue keeps the UIDs of the Listeners attached to a single
// message name, sorted by descending priority.
//
// UIDs with the same priority keep their insertion order.
type PriorityQueue struct {
	entries []queueEntry
}

// NewPriorityQueue returns an empty PriorityQueue.
func NewPriorityQueue() *PriorityQueue {
	return new(PriorityQueue)
}

// Insert adds the UID with the specified priority.
//
// Inserting an UID already in the queue moves it to its new position,
// behind the UIDs that already have the same priority.
func (q *PriorityQueue) Insert(uid UID, priority int) {
	q.Remove(uid)
	q.entries = append(q.entries, queueEntry{uid: uid, priority: priority})

	sort.SliceStable(q.entries, func(i, j int) bool {
		return q.entries[i].priority > q.entries[j].priority
	})
}

// Remove removes the UID from the queue, if present.
func (q *PriorityQueue) Remove(uid UID) {
	q.entries = slices.DeleteFunc(q.entries, func(e queueEntry) bool {
		return e.uid == uid
	})
}

// Contains reports whether the UID is in the queue.
func (q *PriorityQueue) Contains(uid UID) bool {
	return slices.ContainsFunc(q.entries, func(e queueEntry) bool {
		return e.uid == uid
	})
}

// IsEmpty reports whether the queue holds no UID.
func (q *PriorityQueue) IsEmpty() bool { return len(q.entries) == 0 }

// Len returns the number of UIDs in the queue.
func (q *PriorityQueue) Len() int { return len(q.entries) }

// All returns an iterator over the UIDs in the queue, in invocation order.
//
// The iterator can be consumed more than once; the queue must not be
// modified while iterating.
func (q *PriorityQueue) All() iter.Seq[UID] {
	return func(yield func(UID) bool) {
		for _, e := range q.entries {
			if !yield(e.uid) {
				return
			}
		}
	}
}
