package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword salts and hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a stored bcrypt hash against a plain password.
// An empty hash (Google-only account) never matches.
func CheckPassword(hash string, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
