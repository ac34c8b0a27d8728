package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if !Verify("correct horse battery staple", hashed) {
		t.Error("Verify rejected the right password")
	}
	if Verify("wrong password", hashed) {
		t.Error("Verify accepted the wrong password")
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Error("Verify accepted a malformed hash")
	}
}
