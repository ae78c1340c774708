package saturate

import (
	"container/heap"

	"github.com/fologic/saturn/internal/term"
)

// ageHeap and weightHeap are parallel priority queues over the same
// logical passive set, giving the given-clause loop both the
// "oldest first" and "lightest first" selection orders described in
// §4.G without re-sorting on every pick. A clause already removed via
// one heap is skipped, lazily, when it surfaces from the other (the
// PassiveSet.alive map is the source of truth).
type ageHeap []*term.Clause

func (h ageHeap) Len() int { return len(h) }
func (h ageHeap) Less(i, j int) bool {
	if h[i].Age != h[j].Age {
		return h[i].Age < h[j].Age
	}
	return h[i].ID < h[j].ID
}
func (h ageHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *ageHeap) Push(x any)        { *h = append(*h, x.(*term.Clause)) }
func (h *ageHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

type weightHeap []*term.Clause

func (h weightHeap) Len() int { return len(h) }
func (h weightHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	if h[i].Age != h[j].Age {
		return h[i].Age < h[j].Age
	}
	return h[i].ID < h[j].ID
}
func (h weightHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *weightHeap) Push(x any)   { *h = append(*h, x.(*term.Clause)) }
func (h *weightHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// PassiveSet is the unprocessed/passive clause pool of §4.G: clauses
// wait here until the given-clause loop selects one for processing,
// alternating between age-oldest and weight-lightest picks at a fixed
// ratio, matching the "age/weight ratio" strategy knob of
// internal/config.
type PassiveSet struct {
	byAge    ageHeap
	byWeight weightHeap
	alive    map[uint64]*term.Clause

	ratio     int // weight-picks per age-pick
	tickCount int
}

// NewPassiveSet returns an empty passive set with the given
// weight:age selection ratio (e.g. 5 means 5 weight-picks for every
// 1 age-pick).
func NewPassiveSet(ratio int) *PassiveSet {
	if ratio < 1 {
		ratio = 1
	}
	p := &PassiveSet{alive: make(map[uint64]*term.Clause), ratio: ratio}
	heap.Init(&p.byAge)
	heap.Init(&p.byWeight)
	return p
}

func (p *PassiveSet) Len() int { return len(p.alive) }

// Add inserts c into both selection orders.
func (p *PassiveSet) Add(c *term.Clause) {
	p.alive[c.ID] = c
	heap.Push(&p.byAge, c)
	heap.Push(&p.byWeight, c)
}

// Remove discards c from the passive set without selecting it (used
// when a later simplification or subsumption makes it redundant before
// its turn comes up).
func (p *PassiveSet) Remove(id uint64) {
	delete(p.alive, id)
}

// Next pops the next clause to process, alternating age/weight
// selection at the configured ratio, skipping entries already removed
// via the other heap (lazy deletion). Returns false once both heaps
// are drained of live entries.
func (p *PassiveSet) Next() (*term.Clause, bool) {
	for {
		if len(p.byAge) == 0 && len(p.byWeight) == 0 {
			return nil, false
		}
		byAgeTurn := p.tickCount%(p.ratio+1) == 0
		p.tickCount++

		var c *term.Clause
		if byAgeTurn && len(p.byAge) > 0 {
			c = heap.Pop(&p.byAge).(*term.Clause)
		} else if len(p.byWeight) > 0 {
			c = heap.Pop(&p.byWeight).(*term.Clause)
		} else if len(p.byAge) > 0 {
			c = heap.Pop(&p.byAge).(*term.Clause)
		} else {
			continue
		}

		if _, ok := p.alive[c.ID]; !ok {
			continue // stale: already removed via the other heap
		}
		delete(p.alive, c.ID)
		return c, true
	}
}
