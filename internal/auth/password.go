package auth

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength applies the configured password policy.
// Returns a WeakPasswordError describing the first violated rule.
func ValidatePasswordStrength(password string, minLength int, requireAlnum bool) error {
	if len(password) < minLength {
		return &WeakPasswordError{
			Reason: fmt.Sprintf("password must be at least %d characters", minLength),
		}
	}

	if requireAlnum {
		var hasLetter, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasLetter || !hasDigit {
			return &WeakPasswordError{
				Reason: "password must contain both letters and digits",
			}
		}
	}

	return nil
}
