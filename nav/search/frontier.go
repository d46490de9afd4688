package search

import (
	"container/heap"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

type pqEntry struct {
	id       NodeID
	state    engine.State
	priority float64
	seq      uint64
	index    int
}

type entryHeap []*pqEntry

func (h entryHeap) Len() int { return len(h) }

// Less orders by priority, then by insertion order.
func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*pqEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// PriorityQueue is a min-priority frontier keyed by state. At most one entry
// per state is held; equal priorities pop in insertion order.
type PriorityQueue struct {
	h     entryHeap
	index map[engine.State]*pqEntry
	seq   uint64
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{index: make(map[engine.State]*pqEntry)}
}

// Len returns the number of queued entries.
func (q *PriorityQueue) Len() int { return q.h.Len() }

// Push queues node id for state s. An existing entry for s is replaced.
func (q *PriorityQueue) Push(s engine.State, id NodeID, priority float64) {
	if _, ok := q.index[s]; ok {
		q.Remove(s)
	}
	q.seq++
	e := &pqEntry{id: id, state: s, priority: priority, seq: q.seq}
	heap.Push(&q.h, e)
	q.index[s] = e
}

// Pop removes and returns the entry with the lowest priority.
// It panics on an empty queue.
func (q *PriorityQueue) Pop() (NodeID, float64) {
	e := heap.Pop(&q.h).(*pqEntry)
	delete(q.index, e.state)
	return e.id, e.priority
}

// Peek returns the lowest priority without removing it.
func (q *PriorityQueue) Peek() (float64, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return q.h[0].priority, true
}

// Contains reports whether s has a queued entry.
func (q *PriorityQueue) Contains(s engine.State) bool {
	_, ok := q.index[s]
	return ok
}

// PriorityOf returns the queued priority of s.
func (q *PriorityQueue) PriorityOf(s engine.State) (float64, bool) {
	e, ok := q.index[s]
	if !ok {
		return 0, false
	}
	return e.priority, true
}

// Remove drops the entry for s if present.
func (q *PriorityQueue) Remove(s engine.State) {
	e, ok := q.index[s]
	if !ok {
		return
	}
	heap.Remove(&q.h, e.index)
	delete(q.index, s)
}

// fifoFrontier is the BFS queue with state membership.
type fifoFrontier struct {
	items   []NodeID
	head    int
	members map[engine.State]struct{}
}

func newFIFOFrontier() *fifoFrontier {
	return &fifoFrontier{members: make(map[engine.State]struct{})}
}

func (f *fifoFrontier) push(t *Tree, id NodeID) {
	f.items = append(f.items, id)
	f.members[t.State(id)] = struct{}{}
}

func (f *fifoFrontier) pop(t *Tree) NodeID {
	id := f.items[f.head]
	f.head++
	if f.head > 1024 && f.head*2 > len(f.items) {
		f.items = append([]NodeID(nil), f.items[f.head:]...)
		f.head = 0
	}
	delete(f.members, t.State(id))
	return id
}

func (f *fifoFrontier) len() int { return len(f.items) - f.head }

func (f *fifoFrontier) contains(s engine.State) bool {
	_, ok := f.members[s]
	return ok
}

// lifoFrontier is the DFS stack with state membership.
type lifoFrontier struct {
	items   []NodeID
	members map[engine.State]struct{}
}

func newLIFOFrontier() *lifoFrontier {
	return &lifoFrontier{members: make(map[engine.State]struct{})}
}

func (f *lifoFrontier) push(t *Tree, id NodeID) {
	f.items = append(f.items, id)
	f.members[t.State(id)] = struct{}{}
}

func (f *lifoFrontier) pop(t *Tree) NodeID {
	id := f.items[len(f.items)-1]
	f.items = f.items[:len(f.items)-1]
	delete(f.members, t.State(id))
	return id
}

func (f *lifoFrontier) len() int { return len(f.items) }

func (f *lifoFrontier) contains(s engine.State) bool {
	_, ok := f.members[s]
	return ok
}
