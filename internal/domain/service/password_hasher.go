// Package service defines interfaces for stateless domain services whose
// implementations live in the infra layer.
package service

// PasswordHasher hashes and verifies passwords with a salted one-way function.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool
}

// PasswordPolicy checks a new password before it is hashed.
type PasswordPolicy interface {
	Validate(password string) error
}
