package auth

import (
	"context"
	"time"

	"microposts/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Session is the server-side record behind a session token.
type Session struct {
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps sessions in Redis under session:<id> with a TTL.
type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Create stores a new session for userID and returns its id.
func (s *SessionStore) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()
	err := utils.SetJSON(ctx, s.rdb, sessionKeyPrefix+sid, Session{UserID: userID, CreatedAt: time.Now().UTC()}, s.ttl)
	return sid, err
}

// Get returns the session, or nil if it does not exist or has expired.
func (s *SessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	var sess Session
	found, err := utils.GetJSON(ctx, s.rdb, sessionKeyPrefix+sid, &sess)
	if err != nil || !found {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return utils.DeleteKey(ctx, s.rdb, sessionKeyPrefix+sid)
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }
