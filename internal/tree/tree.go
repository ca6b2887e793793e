package tree

import (
	"github.com/gostonefire/parcelmap/internal/model"
	"github.com/gostonefire/parcelmap/internal/normalize"
	"iter"
)

// Node - One parcel in a bucket tree. A node exclusively owns its two subtrees.
type Node struct {
	parcel model.Parcel
	left   *Node
	right  *Node
}

// Tree - Unbalanced binary search tree of parcels ordered by weight.
// For every node all weights in the left subtree are strictly less than the node weight and all weights in the
// right subtree are greater or equal. The shape only depends on insertion order, it is never rebalanced.
type Tree struct {
	root *Node
	size int
}

// New - Returns a pointer to a new empty Tree
func New() *Tree {
	return &Tree{}
}

// Len - Returns the number of parcels in the tree
func (T *Tree) Len() int {
	return T.size
}

// IsEmpty - Returns true if the tree holds no parcels
func (T *Tree) IsEmpty() bool {
	return T.root == nil
}

// Insert - Adds p as a new leaf. Lighter parcels go left, equal or heavier go right, so parcels with the same
// weight end up in insertion order. Duplicates are never merged.
func (T *Tree) Insert(p model.Parcel) {
	n := &Node{parcel: p}
	T.size++

	if T.root == nil {
		T.root = n
		return
	}

	cur := T.root
	for {
		if p.Weight < cur.parcel.Weight {
			if cur.left == nil {
				cur.left = n
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				return
			}
			cur = cur.right
		}
	}
}

// SearchByWeight - Probes the search path for a parcel with exactly the given weight and returns the first one met.
// Parcels with the same weight that are not on the path are not looked for, so this answers whether such a parcel
// exists rather than collecting them.
func (T *Tree) SearchByWeight(weight int) (parcel model.Parcel, found bool) {
	cur := T.root
	for cur != nil {
		switch {
		case weight == cur.parcel.Weight:
			return cur.parcel, true
		case weight < cur.parcel.Weight:
			cur = cur.left
		default:
			cur = cur.right
		}
	}

	return
}

// SearchByDestination - Visits the whole tree in order and returns the first parcel going to destination.
// The tree is ordered by weight so nothing can be pruned.
func (T *Tree) SearchByDestination(destination string) (parcel model.Parcel, found bool) {
	for p := range T.Matching(destination) {
		return p, true
	}

	return
}

// All - Returns an iterator over every parcel in ascending weight order
func (T *Tree) All() iter.Seq[model.Parcel] {
	return func(yield func(model.Parcel) bool) {
		var stack []*Node
		cur := T.root
		for cur != nil || len(stack) > 0 {
			for cur != nil {
				stack = append(stack, cur)
				cur = cur.left
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(cur.parcel) {
				return
			}
			cur = cur.right
		}
	}
}

// Matching - Returns an iterator over the parcels going to destination, in ascending weight order
func (T *Tree) Matching(destination string) iter.Seq[model.Parcel] {
	key := normalize.Key(destination)
	return func(yield func(model.Parcel) bool) {
		for p := range T.All() {
			if p.Destination == key && !yield(p) {
				return
			}
		}
	}
}

// Filter - Returns an iterator over the parcels going to destination that are strictly heavier (model.Higher) or
// strictly lighter (model.Lower) than weight. Parcels weighing exactly weight are never included, an unknown
// condition yields nothing.
func (T *Tree) Filter(destination string, weight int, condition model.Condition) iter.Seq[model.Parcel] {
	return func(yield func(model.Parcel) bool) {
		for p := range T.Matching(destination) {
			keep := (condition == model.Higher && p.Weight > weight) || (condition == model.Lower && p.Weight < weight)
			if keep && !yield(p) {
				return
			}
		}
	}
}

// Aggregate - Sums weight and valuation over every parcel in the tree regardless of destination
func (T *Tree) Aggregate() (totals model.Totals) {
	for p := range T.All() {
		totals.Add(p)
	}

	return
}

// AggregateFor - Sums weight and valuation over the parcels going to destination
func (T *Tree) AggregateFor(destination string) (totals model.Totals) {
	for p := range T.Matching(destination) {
		totals.Add(p)
	}

	return
}

// Min - Returns the leftmost, and thereby lightest, parcel in the tree
func (T *Tree) Min() (parcel model.Parcel, found bool) {
	cur := T.root
	if cur == nil {
		return
	}
	for cur.left != nil {
		cur = cur.left
	}

	return cur.parcel, true
}

// Max - Returns the rightmost, and thereby heaviest, parcel in the tree
func (T *Tree) Max() (parcel model.Parcel, found bool) {
	cur := T.root
	if cur == nil {
		return
	}
	for cur.right != nil {
		cur = cur.right
	}

	return cur.parcel, true
}

// MinFor - Returns the lightest parcel going to destination
func (T *Tree) MinFor(destination string) (parcel model.Parcel, found bool) {
	return T.SearchByDestination(destination)
}

// MaxFor - Returns the heaviest parcel going to destination. Among parcels of equal weight the last inserted wins,
// the same one Max would return.
func (T *Tree) MaxFor(destination string) (parcel model.Parcel, found bool) {
	for p := range T.Matching(destination) {
		parcel, found = p, true
	}

	return
}

// Height - Returns the number of nodes on the longest root to leaf path, zero for an empty tree
func (T *Tree) Height() (height int) {
	if T.root == nil {
		return
	}

	level := []*Node{T.root}
	for len(level) > 0 {
		height++
		var next []*Node
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}

	return
}

// Free - Unlinks every node of the tree exactly once and leaves the tree empty.
// It returns the number of nodes released, calling it on an empty tree is a no-op returning zero.
func (T *Tree) Free() (freed int) {
	if T.root == nil {
		return
	}

	stack := []*Node{T.root}
	T.root = nil
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		n.left, n.right = nil, nil
		n.parcel = model.Parcel{}
		freed++
	}
	T.size = 0

	return
}
