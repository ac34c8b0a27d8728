// internal/pkg/password/password.go
//
// Package password provides bcrypt hashing for a local-credential mode.
// The live register/login paths delegate credential storage entirely to the
// external identity provider and do not call into this package; it exists
// so accounts can be migrated off the provider without changing callers.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
