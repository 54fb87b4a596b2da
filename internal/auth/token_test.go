package auth

import (
	"testing"
	"time"

	"github.com/spacecal/spacecal/internal/config"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/user"
	"github.com/stretchr/testify/assert"
)

func setupTokenTest(t *testing.T) (*TokenService, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	service := NewTokenService(config.Auth{TokenSecret: "test-secret", TokenTTL: 72}, clock)
	return service, clock
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	service, _ := setupTokenTest(t)

	token, err := service.Issue(user.User{Uid: "u1", DisplayName: "지수"})
	assert.NoError(t, err)

	uid, err := service.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	service, clock := setupTokenTest(t)

	token, err := service.Issue(user.User{Uid: "u1", DisplayName: "지수"})
	assert.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(73 * time.Hour))
	_, err = service.Validate(token)

	assert.Error(t, err)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	service, clock := setupTokenTest(t)
	other := NewTokenService(config.Auth{TokenSecret: "another-secret", TokenTTL: 72}, clock)

	token, err := other.Issue(user.User{Uid: "u1", DisplayName: "지수"})
	assert.NoError(t, err)

	_, err = service.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	service, _ := setupTokenTest(t)

	_, err := service.Validate("not.a.token")

	assert.Error(t, err)
}
