package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongCredentials = errors.New("wrong email or password")
)

type Admin struct {
	Email string
	Role  string
}

const RoleAdmin = "admin"

// AuthService checks the single admin account configured for the deployment.
type AuthService struct {
	adminEmail        string
	adminPasswordHash []byte
}

func NewAuthService(adminEmail, adminPasswordHash string) *AuthService {
	return &AuthService{
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: []byte(adminPasswordHash),
	}
}

func (s *AuthService) Login(_ context.Context, email, password string) (Admin, error) {
	if s.adminEmail == "" || len(s.adminPasswordHash) == 0 {
		return Admin{}, ErrWrongCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) != 1 {
		return Admin{}, ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password)); err != nil {
		return Admin{}, ErrWrongCredentials
	}

	return Admin{Email: s.adminEmail, Role: RoleAdmin}, nil
}

// HashPassword returns the bcrypt hash stored as api.admin_password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
