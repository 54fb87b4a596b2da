package user

import (
	"context"
	"fmt"
)

type Service interface {
	GetUserByUid(ctx context.Context, uid string) (User, error)
	// RegisterLogin stores or refreshes the profile delivered by the
	// identity provider and returns the stored row.
	RegisterLogin(ctx context.Context, u User) (User, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewUserService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) RegisterLogin(ctx context.Context, u User) (User, error) {
	if u.Uid == "" {
		return User{}, fmt.Errorf("cannot register login without uid")
	}
	return s.repo.Upsert(ctx, u)
}
