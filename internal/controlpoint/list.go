package controlpoint

// none is the arena index standing in for a nil pointer.
const none = -1

type node struct {
	point Point
	prev  int
	next  int
}

// List is a doubly-linked, x-sorted sequence of control points backed
// by an arena so that a full row's worth of points never triggers more
// than one underlying slice growth. Call Reset between rows to reuse
// the arena instead of reallocating it.
type List struct {
	nodes []node
	first int
	last  int
}

// NewList returns an empty list with room for capacityHint points
// preallocated.
func NewList(capacityHint int) *List {
	return &List{
		nodes: make([]node, 0, capacityHint),
		first: none,
		last:  none,
	}
}

// Reset empties the list while keeping the arena's backing array, so
// the next row's Add calls don't reallocate.
func (l *List) Reset() {
	l.nodes = l.nodes[:0]
	l.first = none
	l.last = none
}

// Len returns the number of points currently in the list.
func (l *List) Len() int {
	count := 0
	for n := l.first; n != none; n = l.nodes[n].next {
		count++
	}
	return count
}

// First returns the index of the first (leftmost) node, or none if the
// list is empty.
func (l *List) First() int { return l.first }

// Last returns the index of the last (rightmost) node, or none if the
// list is empty.
func (l *List) Last() int { return l.last }

// Next returns the index following idx, or none.
func (l *List) Next(idx int) int { return l.nodes[idx].next }

// Prev returns the index preceding idx, or none.
func (l *List) Prev(idx int) int { return l.nodes[idx].prev }

// Point returns a pointer to the point payload at idx, mutable in
// place.
func (l *List) Point(idx int) *Point { return &l.nodes[idx].point }

// Add inserts point in x-sorted position, searching for the insertion
// point starting at the from hint (pass None() if you have no better
// starting point; the search degrades to O(n) from the head in that
// case). Returns the new node's index.
func (l *List) Add(point Point, from int) int {
	idx := len(l.nodes)
	l.nodes = append(l.nodes, node{point: point, prev: none, next: none})

	if l.first == none {
		l.first = idx
		l.last = idx
		return idx
	}

	prev := l.Find(point.X, from)
	l.nodes[idx].prev = prev
	if prev == none {
		l.nodes[idx].next = l.first
		l.first = idx
	} else {
		l.nodes[idx].next = l.nodes[prev].next
		l.nodes[prev].next = idx
	}

	if l.nodes[idx].next != none {
		l.nodes[l.nodes[idx].next].prev = idx
	} else {
		l.last = idx
	}

	return idx
}

// RemoveFirst drops the leftmost node. It is a no-op on an empty list.
// The node's arena slot is simply unlinked, not freed.
func (l *List) RemoveFirst() {
	idx := l.first
	if idx == none {
		return
	}
	next := l.nodes[idx].next
	if next == none {
		l.last = none
	} else {
		l.nodes[next].prev = none
	}
	l.first = next
}

// RemoveLast drops the rightmost node.
func (l *List) RemoveLast() {
	idx := l.last
	if idx == none {
		return
	}
	prev := l.nodes[idx].prev
	if prev == none {
		l.first = none
	} else {
		l.nodes[prev].next = none
	}
	l.last = prev
}

// None returns the sentinel index meaning "no node", for callers that
// need to pass it as a "from" hint.
func None() int { return none }

// Find returns the index of the rightmost node whose point.X <= x,
// searching outward from the from hint (None() to start from the
// head). Returns None() if every node's X exceeds x, or the list is
// empty.
func (l *List) Find(x float64, from int) int {
	if l.first == none {
		return none
	}
	if from == none {
		from = l.first
	}

	n := from
	for n != none && l.nodes[n].point.X > x {
		n = l.nodes[n].prev
	}
	if n == none {
		return none
	}
	for l.nodes[n].next != none && l.nodes[l.nodes[n].next].point.X <= x {
		n = l.nodes[n].next
	}
	return n
}

// FindRange locates the bracketing nodes of [x1, x2]: start is the
// rightmost node with X <= x1 (or None()), and end is the first node
// with X >= x2 found walking right from start (or None() if the range
// runs off the end of the list).
func (l *List) FindRange(x1, x2 float64, from int) (start, end int) {
	if l.first == none {
		return none, none
	}
	if from == none {
		from = l.first
	}

	n := from
	for l.nodes[n].next != none && l.nodes[l.nodes[n].next].point.X <= x1 {
		n = l.nodes[n].next
	}
	for n != none && l.nodes[n].point.X > x1 {
		n = l.nodes[n].prev
	}
	start = n

	for n != none && l.nodes[n].point.X < x2 {
		n = l.nodes[n].next
	}
	end = n

	return start, end
}

// Reflect mirrors every point about axis and reverses the list order
// in place. Each node's prev/next are exchanged as it's visited, so
// walking via the now-swapped prev field actually advances in the old
// forward direction.
func (l *List) Reflect(axis float64) {
	for n := l.first; n != none; n = l.nodes[n].prev {
		l.nodes[n].point.Reflect(axis)
		l.nodes[n].prev, l.nodes[n].next = l.nodes[n].next, l.nodes[n].prev
	}
	l.first, l.last = l.last, l.first
}
