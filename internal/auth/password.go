package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the shortest password accepted on change.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordMeetsPolicy requires at least MinPasswordLength characters, one ASCII
// digit and one ASCII uppercase letter.
func PasswordMeetsPolicy(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	return hasDigit && hasUpper
}
