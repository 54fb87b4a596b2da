package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(NewRepositoryStub())

	t.Run("first login stores the profile", func(t *testing.T) {
		stored, err := service.RegisterLogin(ctx, User{Uid: "u1", DisplayName: "지수", Email: "jisu@example.com"})

		assert.NoError(t, err)
		assert.Equal(t, "u1", stored.Uid)

		found, err := service.GetUserByUid(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "지수", found.DisplayName)
	})

	t.Run("repeated login refreshes the profile", func(t *testing.T) {
		_, err := service.RegisterLogin(ctx, User{Uid: "u1", DisplayName: "김지수", Email: "jisu@example.com"})
		assert.NoError(t, err)

		found, err := service.GetUserByUid(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "김지수", found.DisplayName)
	})

	t.Run("missing uid is rejected", func(t *testing.T) {
		_, err := service.RegisterLogin(ctx, User{DisplayName: "이름만"})
		assert.Error(t, err)
	})
}

func TestService_GetUserByUid_NotFound(t *testing.T) {
	service := NewUserService(NewRepositoryStub())

	_, err := service.GetUserByUid(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
