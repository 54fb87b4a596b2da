package calendar

import "context"

// ResolverStub returns a fixed space id (or error) for store tests.
type ResolverStub struct {
	SpaceId string
	Err     error
}

func (r *ResolverStub) DefaultSpaceID(ctx context.Context, userUid string) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	return r.SpaceId, nil
}
