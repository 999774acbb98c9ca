package runpath

import "container/heap"

// Entry is one pending state in the Frontier.
type Entry struct {
	State    State
	Cost     uint64 // best known accumulated cost
	Priority uint64 // Cost plus heuristic estimate
	seq      uint64 // insertion order, breaks priority ties
	index    int    // position in the heap slice
}

// Frontier is a min-priority queue of states with decrease-key.
// Each state appears at most once; PushOrImprove relaxes it in place via
// heap.Fix instead of pushing duplicates.
// Not safe for concurrent use: every search owns its own Frontier.
type Frontier struct {
	pq    entryPQ
	index map[State]*Entry
	seq   uint64
}

// NewFrontier returns an empty Frontier with room for capacity states.
func NewFrontier(capacity int) *Frontier {
	if capacity < 0 {
		capacity = 0
	}

	return &Frontier{
		pq:    make(entryPQ, 0, capacity),
		index: make(map[State]*Entry, capacity),
	}
}

// Len returns the number of pending states.
func (f *Frontier) Len() int { return len(f.pq) }

// Contains reports whether s is pending.
func (f *Frontier) Contains(s State) bool {
	_, ok := f.index[s]
	return ok
}

// PushOrImprove inserts s if it is absent. If s is already pending, its cost
// and priority are replaced only when priority is strictly lower; an existing
// priority is never raised.
// Returns inserted=true for a new entry and changed=true when the frontier
// was modified at all.
func (f *Frontier) PushOrImprove(s State, cost, priority uint64) (inserted, changed bool) {
	if e, ok := f.index[s]; ok {
		if priority >= e.Priority {
			return false, false
		}
		e.Cost = cost
		e.Priority = priority
		heap.Fix(&f.pq, e.index)

		return false, true
	}

	f.seq++
	e := &Entry{State: s, Cost: cost, Priority: priority, seq: f.seq}
	heap.Push(&f.pq, e)
	f.index[s] = e

	return true, true
}

// PopMin removes and returns the lowest-priority entry.
// Equal priorities pop in insertion order. ok is false when empty.
func (f *Frontier) PopMin() (e Entry, ok bool) {
	if len(f.pq) == 0 {
		return Entry{}, false
	}
	top := heap.Pop(&f.pq).(*Entry)
	delete(f.index, top.State)

	return *top, true
}

// entryPQ implements heap.Interface ordered by (Priority, seq).
type entryPQ []*Entry

// Len returns the number of items in the heap.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders by priority, then by insertion sequence.
func (pq entryPQ) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements and keeps their index fields current.
func (pq entryPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x (an *Entry) onto the heap. Called by heap.Push.
func (pq *entryPQ) Push(x any) {
	e := x.(*Entry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}

// Pop removes the last element. Called by heap.Pop.
func (pq *entryPQ) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]

	return e
}
