package space

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupServiceTest(t *testing.T) (*Service, *RepositoryStub) {
	repo := NewRepositoryStub()
	return NewService(repo), repo
}

func TestService_DefaultSpaceID(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers the personal space", func(t *testing.T) {
		service, repo := setupServiceTest(t)
		shared, err := repo.CreateSpace(ctx, Space{Name: "공유", Type: TypeShared, OwnerUid: "u1"})
		assert.NoError(t, err)
		personal, err := repo.CreateSpace(ctx, Space{Name: "개인", Type: TypePersonal, OwnerUid: "u1"})
		assert.NoError(t, err)

		id, err := service.DefaultSpaceID(ctx, "u1")

		assert.NoError(t, err)
		assert.Equal(t, personal.Id, id)
		assert.NotEqual(t, shared.Id, id)
	})

	t.Run("falls back to any owned space", func(t *testing.T) {
		service, repo := setupServiceTest(t)
		shared, err := repo.CreateSpace(ctx, Space{Name: "공유", Type: TypeShared, OwnerUid: "u1"})
		assert.NoError(t, err)

		id, err := service.DefaultSpaceID(ctx, "u1")

		assert.NoError(t, err)
		assert.Equal(t, shared.Id, id)
	})

	t.Run("no space at all", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		_, err := service.DefaultSpaceID(ctx, "u1")

		assert.ErrorIs(t, err, ErrNoSpace)
	})
}

func TestService_EnsurePersonalSpace(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the space and the owner membership on first login", func(t *testing.T) {
		service, repo := setupServiceTest(t)

		created, err := service.EnsurePersonalSpace(ctx, "u1", "지수")

		assert.NoError(t, err)
		assert.Equal(t, "지수의 개인 캘린더", created.Name)
		assert.Equal(t, TypePersonal, created.Type)
		assert.Equal(t, "u1", created.OwnerUid)

		spaces, err := repo.ListForUser(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, spaces, 1)
	})

	t.Run("is idempotent", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		first, err := service.EnsurePersonalSpace(ctx, "u1", "지수")
		assert.NoError(t, err)
		second, err := service.EnsurePersonalSpace(ctx, "u1", "지수")
		assert.NoError(t, err)

		assert.Equal(t, first.Id, second.Id)
	})

	t.Run("membership failure rolls the space back", func(t *testing.T) {
		service, repo := setupServiceTest(t)
		repo.AddMemberErr = errors.New("insert failed")

		_, err := service.EnsurePersonalSpace(ctx, "u1", "지수")

		assert.Error(t, err)
		_, findErr := repo.FindPersonalSpace(ctx, "u1")
		assert.ErrorIs(t, findErr, ErrSpaceNotFound)
	})
}

func TestService_ListUserSpaces(t *testing.T) {
	ctx := context.Background()
	service, repo := setupServiceTest(t)

	created, err := repo.CreateSpace(ctx, Space{Name: "개인", Type: TypePersonal, OwnerUid: "u1"})
	assert.NoError(t, err)
	assert.NoError(t, repo.AddMember(ctx, created.Id, "u1", RoleOwner))

	other, err := repo.CreateSpace(ctx, Space{Name: "남의 것", Type: TypePersonal, OwnerUid: "u2"})
	assert.NoError(t, err)
	assert.NoError(t, repo.AddMember(ctx, other.Id, "u2", RoleOwner))

	spaces, err := service.ListUserSpaces(ctx, "u1")

	assert.NoError(t, err)
	assert.Len(t, spaces, 1)
	assert.Equal(t, created.Id, spaces[0].Id)
}
