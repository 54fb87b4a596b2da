package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/user"
	"github.com/stretchr/testify/assert"
)

func setupManagerTest(t *testing.T) (*StoreManager, *GatewayStub) {
	gateway := NewGatewayStub()
	resolver := &ResolverStub{SpaceId: "space-1"}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	return NewStoreManager(gateway, resolver, clock, 0), gateway
}

func TestStoreManager_StoreFor(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManagerTest(t)
	u := user.User{Uid: "u1", DisplayName: "지수"}

	first := manager.StoreFor(ctx, u)
	second := manager.StoreFor(ctx, u)

	assert.Same(t, first, second)
	assert.Equal(t, "space-1", first.ActiveSpaceId())
}

func TestStoreManager_SignOut(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManagerTest(t)
	u := user.User{Uid: "u1", DisplayName: "지수"}

	before := manager.StoreFor(ctx, u)
	_, err := before.AddEvent(ctx, draftOn("회의", "2025-09-02"), u.Uid, u.DisplayName)
	assert.NoError(t, err)

	manager.SignOut(ctx, u.Uid)

	assert.Empty(t, before.Events())
	after := manager.StoreFor(ctx, u)
	assert.NotSame(t, before, after)
}

func TestStoreManager_ReconcileAll(t *testing.T) {
	ctx := context.Background()
	manager, gateway := setupManagerTest(t)
	u := user.User{Uid: "u1", DisplayName: "지수"}

	store := manager.StoreFor(ctx, u)
	gateway.FailCreate = true
	_, err := store.AddEvent(ctx, draftOn("회의", "2025-09-02"), u.Uid, u.DisplayName)
	assert.NoError(t, err)

	gateway.FailCreate = false
	manager.ReconcileAll(ctx)

	entries := store.Events()
	assert.Len(t, entries, 1)
	assert.Equal(t, StatusSynced, entries[0].Sync)
	assert.Equal(t, 1, gateway.Count())
}
