package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/inneratlas/inneratlas-backend/internal/normalization"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

const minPasswordLength = 8

func NormalizeUserFields(user *types.User) {
	user.Email = normalization.ParseInputString(user.Email)
	user.Username = normalization.ParseInputString(user.Username)
}

func ValidateRegistration(user *types.User, password string) error {
	if user.Username == "" {
		return fmt.Errorf("username is required")
	}
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
