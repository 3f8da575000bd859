package stump

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Proof is the inclusion proof for one or more leaves: the positions of
// the leaves being proven (the targets) and the sibling hashes needed to
// hash from those targets up to the roots of the subtrees containing
// them. Targets need not be pre-sorted; reconstruction sorts them
// internally.
//
// A Proof is a plain value object with no identity of its own. Reusing
// one across multiple Verify/Delete calls is safe; Copy exists for
// callers that want an independent value to mutate or hand to another
// goroutine after a Stump has consumed one.
type Proof struct {
	// Targets are the leaf positions this proof witnesses membership
	// for.
	Targets []uint64

	// Proof holds every sibling hash along the paths from Targets up to
	// their subtree roots that isn't itself supplied as another target
	// or computable from one.
	Proof []Hash
}

// NewProof builds a Proof from the given targets and proof hashes. The
// slices are not copied; callers that retain ownership of them should
// call Copy first.
func NewProof(targets []uint64, proof []Hash) Proof {
	return Proof{Targets: targets, Proof: proof}
}

// Copy returns a deep copy of p, safe to mutate independently of p.
func (p Proof) Copy() Proof {
	return Proof{
		Targets: slices.Clone(p.Targets),
		Proof:   slices.Clone(p.Proof),
	}
}

// String returns a human-readable dump of p, useful for debugging and
// test failure messages.
func (p Proof) String() string {
	s := fmt.Sprintf("%d targets: %v\n", len(p.Targets), p.Targets)
	s += fmt.Sprintf("%d proof hashes:\n%s", len(p.Proof), printHashes(p.Proof))
	return s
}
