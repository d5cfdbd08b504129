package submissionguard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	dbmodels "maintenance-backend/models/db"
)

// Store хранилище отметок об отправке заявки по ид сессии браузера
type Store interface {
	Get(ctx context.Context, sessionID string) (*dbmodels.SubmissionGuard, error)
	Set(ctx context.Context, sessionID string, guard dbmodels.SubmissionGuard, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	// Purge удаляет просроченные записи, возвращает количество удаленных
	Purge(ctx context.Context, now time.Time) (int, error)
}

const redisKeyPrefix = "submission_guard:"

func NewRedisStore(client *redis.Client) Store {
	return redisStore{client: client}
}

type redisStore struct {
	client *redis.Client
}

func (s redisStore) Get(ctx context.Context, sessionID string) (*dbmodels.SubmissionGuard, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка чтения отметки сессии из redis")
	}
	guard := dbmodels.SubmissionGuard{}
	if err = json.Unmarshal(raw, &guard); err != nil {
		return nil, errors.Wrap(err, "ошибка разбора отметки сессии")
	}
	return &guard, nil
}

func (s redisStore) Set(ctx context.Context, sessionID string, guard dbmodels.SubmissionGuard, ttl time.Duration) error {
	raw, err := json.Marshal(guard)
	if err != nil {
		return err
	}
	err = s.client.Set(ctx, redisKeyPrefix+sessionID, raw, ttl).Err()
	if err != nil {
		return errors.Wrap(err, "ошибка записи отметки сессии в redis")
	}
	return nil
}

func (s redisStore) Delete(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
	if err != nil {
		return errors.Wrap(err, "ошибка удаления отметки сессии из redis")
	}
	return nil
}

// Purge просроченные ключи redis удаляет сам по ttl
func (s redisStore) Purge(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func NewMemoryStore() Store {
	return &memoryStore{items: map[string]dbmodels.SubmissionGuard{}}
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]dbmodels.SubmissionGuard
}

func (s *memoryStore) Get(ctx context.Context, sessionID string) (*dbmodels.SubmissionGuard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guard, ok := s.items[sessionID]
	if !ok {
		return nil, nil
	}
	return &guard, nil
}

func (s *memoryStore) Set(ctx context.Context, sessionID string, guard dbmodels.SubmissionGuard, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sessionID] = guard
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}

func (s *memoryStore) Purge(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for sessionID, guard := range s.items {
		if !guard.IsLive(now) {
			delete(s.items, sessionID)
			count++
		}
	}
	return count, nil
}
