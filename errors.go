package stump

import "errors"

// Error kinds surfaced by the core. None are recovered locally; all are
// reported to the caller as-is or wrapped with fmt.Errorf("...: %w", ...)
// for positional context.
var (
	// ErrProofShape is returned when the number of leaf hashes passed to
	// Verify or Delete doesn't match the number of targets in the proof.
	ErrProofShape = errors.New("stump: len(dels) does not match len(proof.Targets)")

	// ErrMalformedProof is returned when a proof names a target position
	// outside [0, 2^T) or repeats a target position.
	ErrMalformedProof = errors.New("stump: malformed proof")

	// ErrProofExhausted is returned when reconstruction needs another
	// proof hash but proof.Proof has none left.
	ErrProofExhausted = errors.New("stump: proof hash list exhausted before reconstruction completed")

	// ErrRootCountMismatch is returned by Verify when reconstruction
	// produced no root candidates even though targets were supplied, and
	// by Delete when the null-leaf reconstruction produced a different
	// number of roots than Verify matched.
	ErrRootCountMismatch = errors.New("stump: reconstruction produced an unexpected number of roots")

	// ErrRootMismatch is returned when a candidate root computed from a
	// proof does not match any unmatched stored root.
	ErrRootMismatch = errors.New("stump: candidate roots do not match the stump's stored roots")
)
