package preference

import "context"

const KeyFavoriteTeam = "favorite_team"

// Store is per-visitor key/value state.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
	Remove(ctx context.Context, visitorID, key string) error
}
