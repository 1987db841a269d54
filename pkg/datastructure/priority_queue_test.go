package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinPriorityQueue(t *testing.T) {
	pq := NewMinPriorityQueue[int64, float64]()
	pq.Upsert(1, 5.0)
	pq.Upsert(2, 3.0)
	pq.Upsert(3, 4.0)
	pq.Upsert(4, 10.0)

	t.Run("decrease key", func(t *testing.T) {
		pq.Upsert(4, 1.0)
		assert.Equal(t, 4, pq.Len())
		assert.True(t, pq.Contains(4))
	})

	got := []int64{}
	for pq.Len() > 0 {
		got = append(got, pq.PopMin().GetItem())
	}
	assert.Equal(t, []int64{4, 2, 3, 1}, got)
	assert.False(t, pq.Contains(4))
}
