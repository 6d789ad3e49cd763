package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("Abc123@#")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == "Abc123@#" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !svc.Verify(hash, "Abc123@#") {
		t.Error("expected the original password to verify")
	}
	if svc.Verify(hash, "Abc123@$") {
		t.Error("a different password must not verify")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	first, err := svc.Hash("Abc123@#")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	second, err := svc.Hash("Abc123@#")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must never be equal")
	}
}

func TestPasswordServiceImpl_VerifyMalformedDigest(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	digests := []string{"", "not-a-bcrypt-digest", "$2a$broken"}
	for _, digest := range digests {
		if svc.Verify(digest, "Abc123@#") {
			t.Errorf("malformed digest %q must verify as false", digest)
		}
	}
}

func TestNewPasswordService_CostFallback(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default rather than failing
	svc := NewPasswordService(99)
	if _, err := svc.Hash("Abc123@#"); err != nil {
		t.Fatalf("expected hashing to work with fallback cost: %v", err)
	}
}
