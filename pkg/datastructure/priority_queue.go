package datastructure

import "container/heap"

type Rank interface {
	int | float64
}

type PriorityQueueNode[T comparable, G Rank] struct {
	rank  G
	index int
	item  T
}

func NewPriorityQueueNode[T comparable, G Rank](rank G, item T) *PriorityQueueNode[T, G] {
	return &PriorityQueueNode[T, G]{rank: rank, item: item}
}

func (n *PriorityQueueNode[T, G]) GetItem() T {
	return n.item
}

func (n *PriorityQueueNode[T, G]) GetRank() G {
	return n.rank
}

type priorityQueue[T comparable, G Rank] []*PriorityQueueNode[T, G]

func (pq priorityQueue[T, G]) Len() int {
	return len(pq)
}

func (pq priorityQueue[T, G]) Less(i, j int) bool {
	return pq[i].rank < pq[j].rank
}

func (pq priorityQueue[T, G]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T, G]) Push(x interface{}) {
	n := len(*pq)
	no := x.(*PriorityQueueNode[T, G])
	no.index = n
	*pq = append(*pq, no)
}

func (pq *priorityQueue[T, G]) Pop() interface{} {
	old := *pq
	n := len(old)
	no := old[n-1]
	old[n-1] = nil
	no.index = -1
	*pq = old[0 : n-1]
	return no
}

// MinPriorityQueue min-heap with decrease-key. an item is in the queue at most once.
type MinPriorityQueue[T comparable, G Rank] struct {
	heap  priorityQueue[T, G]
	nodes map[T]*PriorityQueueNode[T, G]
}

func NewMinPriorityQueue[T comparable, G Rank]() *MinPriorityQueue[T, G] {
	return &MinPriorityQueue[T, G]{
		heap:  priorityQueue[T, G]{},
		nodes: make(map[T]*PriorityQueueNode[T, G]),
	}
}

func (pq *MinPriorityQueue[T, G]) Len() int {
	return pq.heap.Len()
}

func (pq *MinPriorityQueue[T, G]) Contains(item T) bool {
	_, ok := pq.nodes[item]
	return ok
}

// Upsert inserts item or updates its rank if it is already queued.
func (pq *MinPriorityQueue[T, G]) Upsert(item T, rank G) {
	if node, ok := pq.nodes[item]; ok {
		node.rank = rank
		heap.Fix(&pq.heap, node.index)
		return
	}
	node := NewPriorityQueueNode(rank, item)
	heap.Push(&pq.heap, node)
	pq.nodes[item] = node
}

// PopMin panics on an empty queue.
func (pq *MinPriorityQueue[T, G]) PopMin() *PriorityQueueNode[T, G] {
	node := heap.Pop(&pq.heap).(*PriorityQueueNode[T, G])
	delete(pq.nodes, node.item)
	return node
}
