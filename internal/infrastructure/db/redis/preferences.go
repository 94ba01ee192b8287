package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/monsite/console-api/internal/core/domain"
)

// PreferenceStore persists per-user UI preferences as JSON blobs under fixed
// keys (prefs:<email>), the server-side analog of the frontend's app-language
// and app-theme storage entries. Records never expire.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (s *PreferenceStore) Get(ctx context.Context, email string) (domain.Preferences, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("preferences get: %w", err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.DefaultPreferences(), nil
	}
	return prefs.Normalize(), nil
}

func (s *PreferenceStore) Put(ctx context.Context, email string, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs.Normalize())
	if err != nil {
		return fmt.Errorf("preferences marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), raw, 0).Err(); err != nil {
		return fmt.Errorf("preferences put: %w", err)
	}
	return nil
}

func (s *PreferenceStore) key(email string) string {
	return "prefs:" + domain.NormalizeEmail(email)
}
