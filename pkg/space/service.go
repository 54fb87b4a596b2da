package space

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrNoSpace means the user has no space at all, not even a fallback.
var ErrNoSpace = errors.New("no space available for user")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// DefaultSpaceID resolves the space the calendar should open with: the
// user's personal space if one exists, otherwise any space the user owns.
// It never creates anything; provisioning happens in EnsurePersonalSpace.
func (s *Service) DefaultSpaceID(ctx context.Context, userUid string) (string, error) {
	personal, err := s.repo.FindPersonalSpace(ctx, userUid)
	if err == nil {
		return personal.Id, nil
	}
	if !errors.Is(err, ErrSpaceNotFound) {
		return "", fmt.Errorf("failed to resolve personal space: %w", err)
	}

	log.Debugf("no personal space for user %s, falling back to any owned space", userUid)
	owned, err := s.repo.FindAnyOwnedSpace(ctx, userUid)
	if errors.Is(err, ErrSpaceNotFound) {
		return "", ErrNoSpace
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve owned space: %w", err)
	}
	return owned.Id, nil
}

// EnsurePersonalSpace returns the user's personal space, creating it (and
// the owner membership) on first login. If the membership insert fails the
// freshly created space is deleted again so a retry starts clean.
func (s *Service) EnsurePersonalSpace(ctx context.Context, userUid string, displayName string) (Space, error) {
	existing, err := s.repo.FindPersonalSpace(ctx, userUid)
	if err == nil {
		log.Debugf("using existing personal space %s for user %s", existing.Id, userUid)
		return existing, nil
	}
	if !errors.Is(err, ErrSpaceNotFound) {
		return Space{}, fmt.Errorf("failed to look up personal space: %w", err)
	}

	log.Infof("creating personal space for user %s", userUid)
	created, err := s.repo.CreateSpace(ctx, Space{
		Name:        fmt.Sprintf("%s의 개인 캘린더", displayName),
		Description: "개인 일정 관리용 스페이스",
		Type:        TypePersonal,
		OwnerUid:    userUid,
	})
	if err != nil {
		return Space{}, fmt.Errorf("failed to create personal space: %w", err)
	}

	if err := s.repo.AddMember(ctx, created.Id, userUid, RoleOwner); err != nil {
		if delErr := s.repo.DeleteSpace(ctx, created.Id); delErr != nil {
			log.Errorf("failed to clean up space %s after membership error: %v", created.Id, delErr)
		}
		return Space{}, fmt.Errorf("failed to register space owner: %w", err)
	}

	return created, nil
}

func (s *Service) ListUserSpaces(ctx context.Context, userUid string) ([]Space, error) {
	spaces, err := s.repo.ListForUser(ctx, userUid)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return spaces, nil
}
