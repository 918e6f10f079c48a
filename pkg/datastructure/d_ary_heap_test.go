package datastructure

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[int](d)

		rng := rand.New(rand.NewSource(7))
		n := 1000
		for i := 0; i < n; i++ {
			h.Insert(NewPriorityQueueNode(rng.Float64()*1e6, i))
		}
		require.Equal(t, n, h.Size())

		prev := -1.0
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, node.GetRank(), prev)
			prev = node.GetRank()
		}
	}
}

func TestMinHeapTieBreakByInsertionOrder(t *testing.T) {
	h := NewFourAryHeap[int]()

	for i := 0; i < 50; i++ {
		h.Insert(NewPriorityQueueNode(1.0, i))
	}

	for i := 0; i < 50; i++ {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, i, node.GetItem())
	}
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewFourAryHeap[int]()

	assert.True(t, h.IsEmpty())
	_, err := h.ExtractMin()
	assert.Error(t, err)
	_, err = h.GetMin()
	assert.Error(t, err)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[string]()

	a := NewPriorityQueueNode(10.0, "a")
	b := NewPriorityQueueNode(20.0, "b")
	c := NewPriorityQueueNode(30.0, "c")
	h.Insert(a)
	h.Insert(b)
	h.Insert(c)

	require.NoError(t, h.DecreaseKey(c, 5.0))

	node, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, "c", node.GetItem())

	// raising a key through DecreaseKey is rejected
	assert.Error(t, h.DecreaseKey(a, 100.0))
}
