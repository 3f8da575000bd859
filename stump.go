package stump

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Stump is a compact accumulator: the total leaf count plus one digest
// per perfect subtree currently present, ordered tallest-first (most to
// least significant set bit of NumLeaves). A slot may hold the null hash
// to denote a deleted-but-not-yet-coalesced root.
//
// Stump is a plain mutable value owned by its caller. Add and Delete
// require exclusive access; Verify only needs shared read access. There
// is no internal locking — a host that mutates one Stump from more than
// one goroutine must serialize those calls itself.
type Stump struct {
	// NumLeaves is the total number of leaves ever added.
	NumLeaves uint64

	// Roots holds one digest per set bit of NumLeaves, tallest subtree
	// first.
	Roots []Hash
}

// New returns an empty Stump.
func New() Stump {
	return Stump{}
}

// String returns a human-readable dump of s.
func (s *Stump) String() string {
	return fmt.Sprintf("numLeaves %d\nroots:\n%s", s.NumLeaves, printHashes(s.Roots))
}

// Equal reports whether s and other have the same leaf count and root
// list.
func (s *Stump) Equal(other Stump) bool {
	return s.NumLeaves == other.NumLeaves && slices.Equal(s.Roots, other.Roots)
}

// Add extends the Stump with the given leaf hashes, in order. For each
// leaf it carries a running hash up through every row where a perfect
// subtree of that height already exists, coalescing adjacent equal-height
// subtrees exactly as their positions require, then appends the result as
// a new root. This cannot fail given well-typed input.
func (s *Stump) Add(leaves []Hash) {
	for _, leaf := range leaves {
		carry := leaf

		row := 0
		for (s.NumLeaves>>uint(row))&1 == 1 {
			root := s.Roots[len(s.Roots)-1]
			s.Roots = s.Roots[:len(s.Roots)-1]

			carry = parentHash(root, carry)
			row++
		}

		s.Roots = append(s.Roots, carry)
		s.NumLeaves++
	}
}

// Verify reconstructs the roots of the subtrees containing dels using
// proof, and checks that every reconstructed root matches a distinct
// entry in s.Roots. On success it returns the indices into s.Roots that
// matched, scanned from the shortest stored root (the end of the slice)
// toward the tallest, which is the order Delete needs to overwrite them.
// Verify never mutates s.
func (s *Stump) Verify(dels []Hash, proof Proof) ([]int, error) {
	if len(dels) != len(proof.Targets) {
		return nil, fmt.Errorf("%w: have %d dels but %d targets", ErrProofShape, len(dels), len(proof.Targets))
	}
	if len(proof.Targets) == 0 {
		return nil, nil
	}

	candidates, err := calculateRoots(s.NumLeaves, dels, proof)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: have %d dels", ErrRootCountMismatch, len(dels))
	}

	rootIdxs := make([]int, 0, len(candidates))
	for i := range s.Roots {
		j := len(s.Roots) - (i + 1)
		if len(rootIdxs) >= len(candidates) {
			break
		}
		if s.Roots[j] == candidates[len(rootIdxs)] {
			rootIdxs = append(rootIdxs, j)
		}
	}

	if len(rootIdxs) != len(candidates) {
		return nil, fmt.Errorf("%w:\ncandidates:\n%s\nroots:\n%s",
			ErrRootMismatch, printHashes(candidates), printHashes(s.Roots))
	}

	return rootIdxs, nil
}

// Delete removes dels from the accumulator using proof. It first
// verifies the deletion against clones of dels and proof so that a
// malformed proof is rejected without any partial mutation, then
// recomputes the affected roots with null leaf hashes (so the identity
// rule in the hash combiner lets fully-deleted subtrees fade to the null
// hash) and overwrites them in place. NumLeaves is unchanged: the shape
// of the forest is preserved so future Adds keep coalescing correctly.
func (s *Stump) Delete(dels []Hash, proof Proof) error {
	rootIdxs, err := s.Verify(append([]Hash(nil), dels...), proof.Copy())
	if err != nil {
		return err
	}

	modifiedRoots, err := calculateRoots(s.NumLeaves, nil, proof)
	if err != nil {
		return err
	}
	if len(modifiedRoots) != len(rootIdxs) {
		return fmt.Errorf("%w: verify matched %d roots but deletion computed %d",
			ErrRootCountMismatch, len(rootIdxs), len(modifiedRoots))
	}

	for i, idx := range rootIdxs {
		s.Roots[idx] = modifiedRoots[i]
	}

	return nil
}
