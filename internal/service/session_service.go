package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// SessionService 服务端会话记录，登出即可吊销尚未过期的令牌
type SessionService struct {
	Redis *redis.Client
}

func NewSessionService(rdb *redis.Client) *SessionService {
	return &SessionService{Redis: rdb}
}

func (s *SessionService) Create(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return s.Redis.Set(ctx, sessionKeyPrefix+sessionID, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *SessionService) IsActive(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.Redis.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
