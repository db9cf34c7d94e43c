// AngelaMos | 2026
// sessions.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

// Session is the refresh-token state kept in redis, keyed by token hash.
// Used sessions stay around until their TTL expires so a replayed token can
// be recognized and its whole family revoked.
type Session struct {
	UserID    string    `json:"user_id"`
	FamilyID  string    `json:"family_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(tokenHash string) string {
	return "refresh:" + tokenHash
}

func userSessionsKey(userID string) string {
	return "sessions:user:" + userID
}

func (s *SessionStore) Create(
	ctx context.Context,
	tokenHash string,
	session *Session,
) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("create session: already expired")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(tokenHash), payload, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), tokenHash)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

func (s *SessionStore) Find(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// MarkUsed flips the used flag in place, preserving the remaining TTL so the
// tombstone outlives the rotation and replay is detectable.
func (s *SessionStore) MarkUsed(
	ctx context.Context,
	tokenHash string,
	session *Session,
) error {
	session.Used = true

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = s.client.Set(
		ctx,
		sessionKey(tokenHash),
		payload,
		redis.KeepTTL,
	).Err()
	if err != nil {
		return fmt.Errorf("mark session used: %w", err)
	}

	return nil
}

func (s *SessionStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RevokeFamily deletes every session of the user sharing the family id.
func (s *SessionStore) RevokeFamily(
	ctx context.Context,
	userID, familyID string,
) error {
	hashes, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	for _, hash := range hashes {
		session, err := s.Find(ctx, hash)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return err
		}

		if session.FamilyID == familyID {
			if err := s.Delete(ctx, hash); err != nil {
				return err
			}
			//nolint:errcheck // set membership is advisory
			_ = s.client.SRem(ctx, userSessionsKey(userID), hash).Err()
		}
	}

	return nil
}

// RevokeAll drops every refresh session the user holds.
func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	hashes, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userSessionsKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}

	return nil
}
