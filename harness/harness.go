// Package harness runs the JSON test-case format described in spec §6
// against a stump.Stump. The format — and this package — sit outside the
// accumulator core: they exist so the host-facing test-vector schema the
// specification documents is actually exercisable, the way
// original_source/tests/test_stump.py exercises pytreexo.py against the
// same fixture shape.
package harness

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/utreexo/stump"
)

// TestCases is the top-level shape of a test-case file: three arrays of
// fixtures, one per accumulator operation.
type TestCases struct {
	InsertionTests []InsertionTest `json:"insertion_tests"`
	ProofTests     []ProofTest     `json:"proof_tests"`
	DeletionTests  []DeletionTest  `json:"deletion_tests"`
}

// InsertionTest adds LeafPreimages to an empty Stump and checks the
// resulting roots against ExpectedRoots (hex-encoded, tallest-first).
type InsertionTest struct {
	LeafPreimages []int    `json:"leaf_preimages"`
	ExpectedRoots []string `json:"expected_roots"`
}

// ProofTest seeds a Stump directly from NumLeaves and Roots, then
// verifies TargetPreimages (hashed with SHA-256, as the preimages
// themselves are raw bytes) against Targets and ProofHashes. Expected
// records whether verification should succeed; Reason documents why when
// it shouldn't.
type ProofTest struct {
	NumLeaves       uint64   `json:"numleaves"`
	Roots           []string `json:"roots"`
	Targets         []uint64 `json:"targets"`
	ProofHashes     []string `json:"proofhashes"`
	TargetPreimages []int    `json:"target_preimages"`
	Expected        bool     `json:"expected"`
	Reason          string   `json:"reason"`
}

// DeletionTest adds LeafPreimages to an empty Stump, deletes TargetValues
// using ProofHashes, and checks the resulting roots against
// ExpectedRoots. The all-zero hex string denotes a null root.
type DeletionTest struct {
	LeafPreimages []int    `json:"leaf_preimages"`
	TargetValues  []uint64 `json:"target_values"`
	ProofHashes   []string `json:"proofhashes"`
	ExpectedRoots []string `json:"expected_roots"`
}

// Load parses a test-case document from r.
func Load(r io.Reader) (*TestCases, error) {
	var tc TestCases
	if err := json.NewDecoder(r).Decode(&tc); err != nil {
		return nil, fmt.Errorf("harness: decoding test cases: %w", err)
	}
	return &tc, nil
}

// leafHash hashes a single preimage byte the way the harness format
// requires: SHA-256 of the one-byte preimage. This is the host's concern
// per spec §6 and distinct from the SHA-512/256 hash combiner the
// accumulator core uses internally between already-hashed leaves.
func leafHash(preimage int) stump.Hash {
	return stump.Hash(sha256.Sum256([]byte{byte(preimage)}))
}

func decodeHash(s string) (stump.Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return stump.Hash{}, fmt.Errorf("harness: decoding hash %q: %w", s, err)
	}
	var h stump.Hash
	if len(raw) != len(h) {
		return h, fmt.Errorf("harness: hash %q has %d bytes, want %d", s, len(raw), len(h))
	}
	copy(h[:], raw)
	return h, nil
}

// RunInsertionTests runs every insertion fixture, returning the index and
// error of the first one that doesn't match its expected roots.
func RunInsertionTests(tests []InsertionTest) error {
	for i, t := range tests {
		leaves := make([]stump.Hash, len(t.LeafPreimages))
		for j, p := range t.LeafPreimages {
			leaves[j] = leafHash(p)
		}

		s := stump.New()
		s.Add(leaves)

		for j, wantHex := range t.ExpectedRoots {
			want, err := decodeHash(wantHex)
			if err != nil {
				return fmt.Errorf("insertion test %d: %w", i, err)
			}
			if j >= len(s.Roots) {
				return fmt.Errorf("insertion test %d: expected root %d but stump has %d roots", i, j, len(s.Roots))
			}
			if s.Roots[j] != want {
				return fmt.Errorf("insertion test %d: root %d: got %s, want %s", i, j, s.Roots[j], want)
			}
		}
	}
	return nil
}

// RunProofTests runs every proof fixture, returning the index and error
// of the first one whose outcome doesn't match Expected.
func RunProofTests(tests []ProofTest) error {
	for i, t := range tests {
		roots := make([]stump.Hash, len(t.Roots))
		for j, rootHex := range t.Roots {
			root, err := decodeHash(rootHex)
			if err != nil {
				return fmt.Errorf("proof test %d: %w", i, err)
			}
			roots[j] = root
		}

		proofHashes := make([]stump.Hash, len(t.ProofHashes))
		for j, ph := range t.ProofHashes {
			h, err := decodeHash(ph)
			if err != nil {
				return fmt.Errorf("proof test %d: %w", i, err)
			}
			proofHashes[j] = h
		}

		delHashes := make([]stump.Hash, len(t.TargetPreimages))
		for j, p := range t.TargetPreimages {
			delHashes[j] = leafHash(p)
		}

		s := stump.Stump{NumLeaves: t.NumLeaves, Roots: roots}
		proof := stump.NewProof(append([]uint64(nil), t.Targets...), proofHashes)

		_, err := s.Verify(delHashes, proof)
		switch {
		case err == nil && !t.Expected:
			return fmt.Errorf("proof test %d: expected failure (%s) but verify succeeded", i, t.Reason)
		case err != nil && t.Expected:
			return fmt.Errorf("proof test %d: expected success but verify failed: %w", i, err)
		}
	}
	return nil
}

// RunDeletionTests runs every deletion fixture, returning the index and
// error of the first one that doesn't match its expected post-deletion
// roots.
func RunDeletionTests(tests []DeletionTest) error {
	for i, t := range tests {
		leaves := make([]stump.Hash, len(t.LeafPreimages))
		for j, p := range t.LeafPreimages {
			leaves[j] = leafHash(p)
		}

		s := stump.New()
		s.Add(leaves)

		delHashes := make([]stump.Hash, len(t.TargetValues))
		for j, target := range t.TargetValues {
			if target >= uint64(len(leaves)) {
				return fmt.Errorf("deletion test %d: target %d out of range", i, target)
			}
			delHashes[j] = leaves[target]
		}

		proofHashes := make([]stump.Hash, len(t.ProofHashes))
		for j, ph := range t.ProofHashes {
			h, err := decodeHash(ph)
			if err != nil {
				return fmt.Errorf("deletion test %d: %w", i, err)
			}
			proofHashes[j] = h
		}

		proof := stump.NewProof(append([]uint64(nil), t.TargetValues...), proofHashes)
		if err := s.Delete(delHashes, proof); err != nil {
			return fmt.Errorf("deletion test %d: delete failed: %w", i, err)
		}

		for j, wantHex := range t.ExpectedRoots {
			want, err := decodeHash(wantHex)
			if err != nil {
				return fmt.Errorf("deletion test %d: %w", i, err)
			}
			if j >= len(s.Roots) {
				return fmt.Errorf("deletion test %d: expected root %d but stump has %d roots", i, j, len(s.Roots))
			}
			if s.Roots[j] != want {
				return fmt.Errorf("deletion test %d: root %d: got %s, want %s", i, j, s.Roots[j], want)
			}
		}
	}
	return nil
}
