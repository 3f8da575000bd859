package stump

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// hashAndPos pairs a position in the implicit forest with the hash
// computed (or supplied) for it. It is the unit of work the root
// reconstructor passes through its two frontier queues.
type hashAndPos struct {
	pos  uint64
	hash Hash
}

// calculateRoots is the root reconstructor (spec §4.4): given a leaf
// count, an optional list of leaf hashes aligned with proof.Targets (nil
// for deletion, where leaves are treated as null), and a Proof, it walks
// a merged frontier of target positions and freshly computed parent
// positions in strictly ascending order, consuming proof hashes only
// when a sibling isn't already present in the frontier, and returns the
// roots of every subtree a target falls under, ordered shortest tree to
// tallest (the order in which their subtrees finish).
//
// The proof's hash list is logically drained: calculateRoots never
// mutates proof itself, it reads proof.Proof through an index cursor.
// Hashes left in proof.Proof after reconstruction finishes are ignored;
// there is no check that the list was consumed exactly.
func calculateRoots(numLeaves uint64, delHashes []Hash, proof Proof) ([]Hash, error) {
	if len(proof.Targets) == 0 {
		return nil, nil
	}

	totalRows := treeRows(numLeaves)
	maxPos := uint64(1) << totalRows

	dels := delHashes
	if dels == nil {
		dels = make([]Hash, len(proof.Targets))
	}
	if len(dels) != len(proof.Targets) {
		return nil, fmt.Errorf("%w: have %d targets but %d leaf hashes",
			ErrProofShape, len(proof.Targets), len(dels))
	}

	targets := make([]hashAndPos, len(proof.Targets))
	seen := make(map[uint64]struct{}, len(proof.Targets))
	for i, t := range proof.Targets {
		if t >= maxPos {
			return nil, fmt.Errorf("%w: target %d out of range [0, %d)", ErrMalformedProof, t, maxPos)
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("%w: duplicate target %d", ErrMalformedProof, t)
		}
		seen[t] = struct{}{}
		targets[i] = hashAndPos{pos: t, hash: dels[i]}
	}
	slices.SortFunc(targets, func(a, b hashAndPos) bool { return a.pos < b.pos })

	roots := make([]Hash, 0, numRoots(numLeaves))

	// frontier is the ascending queue of freshly computed parent nodes
	// at the row above whatever was just consumed. Design note: parent
	// positions are always greater than the positions that produced
	// them within the current pass, so appending to the tail keeps this
	// queue sorted without a second sort pass.
	frontier := make([]hashAndPos, 0, len(proof.Targets))

	ti, fi := 0, 0
	proofIdx := 0

	nextLeast := func() (fromTargets bool, ok bool) {
		haveTarget := ti < len(targets)
		haveFrontier := fi < len(frontier)
		switch {
		case haveTarget && haveFrontier:
			// Targets win ties (spec §4.4 step 4).
			return targets[ti].pos <= frontier[fi].pos, true
		case haveTarget:
			return true, true
		case haveFrontier:
			return false, true
		default:
			return false, false
		}
	}

	for {
		fromTargets, ok := nextLeast()
		if !ok {
			break
		}

		var cur hashAndPos
		if fromTargets {
			cur = targets[ti]
			ti++
		} else {
			cur = frontier[fi]
			fi++
		}

		if isRoot(cur.pos, numLeaves, totalRows) {
			roots = append(roots, cur.hash)
			continue
		}

		// A sibling can only be present in the merged frontier when cur
		// is a left child; ascending processing order guarantees the
		// left half of any pair is consumed before its right half.
		var sibHash Hash
		haveSib := false
		if fromSib, ok := nextLeast(); ok {
			var sibPos uint64
			if fromSib {
				sibPos = targets[ti].pos
			} else {
				sibPos = frontier[fi].pos
			}
			if sibPos == rightSib(cur.pos) {
				haveSib = true
				if fromSib {
					sibHash = targets[ti].hash
					ti++
				} else {
					sibHash = frontier[fi].hash
					fi++
				}
			}
		}

		var next Hash
		if haveSib {
			next = parentHash(cur.hash, sibHash)
		} else {
			if proofIdx >= len(proof.Proof) {
				return nil, ErrProofExhausted
			}
			proofHash := proof.Proof[proofIdx]
			proofIdx++

			if isLeftChild(cur.pos) {
				next = parentHash(cur.hash, proofHash)
			} else {
				next = parentHash(proofHash, cur.hash)
			}
		}

		frontier = append(frontier, hashAndPos{pos: parent(cur.pos, totalRows), hash: next})
	}

	return roots, nil
}
