package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	sessionKeyPrefix   = "wizard:session:"
	confirmKeyPrefix   = "wizard:confirm:"
	confirmedKeyPrefix = "wizard:confirmed:"
	confirmLockTTL     = 30 * time.Second

	// outlives any session TTL
	confirmedMarkerTTL = 30 * 24 * time.Hour
)

// saveScript writes the session unless a confirmed marker exists and the
// incoming copy is not confirmed.
// KEYS: session, marker. ARGV: payload, confirmed flag, ttl ms.
var saveScript = redis.NewScript(`
if ARGV[2] == "0" and redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// RedisSessionStore keeps wizard sessions as JSON documents with a TTL that
// is refreshed on every save. A confirmed session also has a marker key
// that is never released, so a stale copy can not be written back over it.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Save fails with already_confirmed when w is an unconfirmed copy of a
// session that has since been confirmed.
func (s *RedisSessionStore) Save(ctx context.Context, w *domain.Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}

	confirmed := "0"
	if w.Confirmed {
		confirmed = "1"
	}

	written, err := saveScript.Run(
		ctx,
		s.client,
		[]string{sessionKeyPrefix + w.ID, confirmedKeyPrefix + w.ID},
		string(raw),
		confirmed,
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if written == 0 {
		return httperr.ErrBusiness("already_confirmed")
	}
	return nil
}

// Load reads the session and applies the confirmed marker on top of it.
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*domain.Wizard, error) {
	vals, err := s.client.MGet(ctx, sessionKeyPrefix+id, confirmedKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	var w domain.Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, err
	}

	if ref, ok := vals[1].(string); ok {
		w.Confirmed = true
		if w.Reference == "" {
			w.Reference = ref
		}
	}
	return &w, nil
}

// MarkConfirmed records the booking reference for the session. It returns
// false when the session was already marked.
func (s *RedisSessionStore) MarkConfirmed(ctx context.Context, id string, reference string) (bool, error) {
	return s.client.SetNX(ctx, confirmedKeyPrefix+id, reference, confirmedMarkerTTL).Result()
}

func (s *RedisSessionStore) AcquireConfirm(ctx context.Context, id string) (bool, error) {
	return s.client.SetNX(ctx, confirmKeyPrefix+id, "1", confirmLockTTL).Result()
}

func (s *RedisSessionStore) ReleaseConfirm(ctx context.Context, id string) error {
	return s.client.Del(ctx, confirmKeyPrefix+id).Err()
}

var _ domain.SessionStore = (*RedisSessionStore)(nil)
