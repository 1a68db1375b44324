package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"drb-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Engines hold timers and subscriber channels, so they live in a local map.
//   - Redis keeps a liveness marker per session (value: bank id) that operators
//     can count across instances; nothing about scores is written.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Engine
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Engine),
	}
}

func (s *SessionStore) Put(engine *app.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[engine.ID()] = engine
	// best-effort liveness marker
	if err := s.client.Set(context.Background(), s.key(engine.ID()), engine.Bank().ID(), s.ttl).Err(); err != nil {
		log.Printf("redis session mark %s: %v", engine.ID(), err)
	}
}

func (s *SessionStore) Get(sessionID string) (*app.Engine, bool) {
	s.mu.RLock()
	engine, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok && s.ttl > 0 {
		if err := s.client.Expire(context.Background(), s.key(sessionID), s.ttl).Err(); err != nil {
			log.Printf("redis session refresh %s: %v", sessionID, err)
		}
	}
	return engine, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	if err := s.client.Del(context.Background(), s.key(sessionID)).Err(); err != nil {
		log.Printf("redis session delete %s: %v", sessionID, err)
	}
}

// Live counts session markers across all instances sharing the Redis.
func (s *SessionStore) Live(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, "quiz:session:*", 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
