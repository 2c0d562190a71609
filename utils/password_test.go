package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2secret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "hunter2secret") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("same password should produce different hashes due to random salt")
	}
}
