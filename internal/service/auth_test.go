package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	svc := NewAuthService(" Admin@Example.com ", hash)

	admin, err := svc.Login(ctx, "admin@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, Admin{Email: "admin@example.com", Role: RoleAdmin}, admin)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongCredentials)

	_, err = svc.Login(ctx, "other@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrWrongCredentials)

	_, err = NewAuthService("", "").Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}
