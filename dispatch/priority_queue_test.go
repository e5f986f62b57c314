package dispatch_test

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/get-eventually/go-messagebus/dispatch"
)

func newUIDs(n int) []dispatch.UID {
	uids := make([]dispatch.UID, n)
	for i := range uids {
		uids[i] = dispatch.UID(uuid.New())
	}

	return uids
}

func TestPriorityQueue(t *testing.T) {
	t.Run("a new queue is empty", func(t *testing.T) {
		q := dispatch.NewPriorityQueue()

		assert.True(t, q.IsEmpty())
		assert.Equal(t, 0, q.Len())
		assert.Empty(t, slices.Collect(q.All()))
	})

	t.Run("uids are sorted by descending priority, ties keep insertion order", func(t *testing.T) {
		uids := newUIDs(5)
		q := dispatch.NewPriorityQueue()

		q.Insert(uids[0], 10)
		q.Insert(uids[1], 5)
		q.Insert(uids[2], 10)
		q.Insert(uids[3], -1)
		q.Insert(uids[4], 0)

		expected := []dispatch.UID{uids[0], uids[2], uids[1], uids[4], uids[3]}

		assert.Equal(t, expected, slices.Collect(q.All()))
		assert.Equal(t, expected, slices.Collect(q.All()), "iteration should be restartable")
		assert.Equal(t, 5, q.Len())
		assert.False(t, q.IsEmpty())
	})

	t.Run("inserting an existing uid moves it to its new position", func(t *testing.T) {
		uids := newUIDs(3)
		q := dispatch.NewPriorityQueue()

		q.Insert(uids[0], 10)
		q.Insert(uids[1], 10)
		q.Insert(uids[2], 1)

		q.Insert(uids[0], 10)
		assert.Equal(t, []dispatch.UID{uids[1], uids[0], uids[2]}, slices.Collect(q.All()))

		q.Insert(uids[2], 20)
		assert.Equal(t, []dispatch.UID{uids[2], uids[1], uids[0]}, slices.Collect(q.All()))
		assert.Equal(t, 3, q.Len())
	})

	t.Run("remove preserves the order of the remaining uids", func(t *testing.T) {
		uids := newUIDs(4)
		q := dispatch.NewPriorityQueue()

		for _, uid := range uids {
			q.Insert(uid, 1)
		}

		q.Remove(uids[1])
		assert.False(t, q.Contains(uids[1]))
		assert.Equal(t, []dispatch.UID{uids[0], uids[2], uids[3]}, slices.Collect(q.All()))

		q.Remove(uids[1])
		assert.Equal(t, 3, q.Len(), "removing an absent uid should be a no-op")

		for _, uid := range uids {
			q.Remove(uid)
		}

		assert.True(t, q.IsEmpty())
	})

	t.Run("iteration can be stopped early", func(t *testing.T) {
		uids := newUIDs(3)
		q := dispatch.NewPriorityQueue()

		for _, uid := range uids {
			q.Insert(uid, 0)
		}

		var visited []dispatch.UID

		for uid := range q.All() {
			visited = append(visited, uid)
			if len(visited) == 2 {
				break
			}
		}

		assert.Equal(t, uids[:2], visited)
	})
}
