package hash

import "testing"

func TestHashAndCompare(t *testing.T) {
	hasher := Bcrypt{Cost: MinCost}

	hashed, err := hasher.Hash("Red98!@#$%^")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hashed == "Red98!@#$%^" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := hasher.Compare(hashed, "Red98!@#$%^"); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if err := hasher.Compare(hashed, "wrong-password"); err == nil {
		t.Fatal("wrong password should not compare")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := Bcrypt{Cost: MinCost}

	first, err := hasher.Hash("Red98!@#$%^")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("Red98!@#$%^")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
