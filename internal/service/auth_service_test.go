package service

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := &model.User{Name: "Ada", Email: " Ada@Example.com ", Password: "password123"}
	require.NoError(t, f.auth.Register(ctx, user))
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "password123", user.Password)

	err := f.auth.Register(ctx, &model.User{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, _, err = f.auth.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, logged, err := f.auth.Login(ctx, "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, f.cfg.JWT.Secret)
	require.NoError(t, err)
	me, err := f.auth.GetCurrentUser(ctx, claims.Session())
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
}
