package harness

import (
	"os"
	"testing"
)

func loadTestCases(t *testing.T) *TestCases {
	t.Helper()

	f, err := os.Open("testdata/test_cases.json")
	if err != nil {
		t.Fatalf("opening test cases: %v", err)
	}
	defer f.Close()

	tc, err := Load(f)
	if err != nil {
		t.Fatalf("loading test cases: %v", err)
	}
	return tc
}

func TestHarnessInsertion(t *testing.T) {
	tc := loadTestCases(t)
	if err := RunInsertionTests(tc.InsertionTests); err != nil {
		t.Fatal(err)
	}
}

func TestHarnessProof(t *testing.T) {
	tc := loadTestCases(t)
	if err := RunProofTests(tc.ProofTests); err != nil {
		t.Fatal(err)
	}
}

func TestHarnessDeletion(t *testing.T) {
	tc := loadTestCases(t)
	if err := RunDeletionTests(tc.DeletionTests); err != nil {
		t.Fatal(err)
	}
}
