package cache

import (
	"context"
	"encoding/json"
	"time"

	"engagesurvey/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache holds in-progress survey sessions
type SessionCache interface {
	Set(ctx context.Context, session *model.SurveySession) error
	Get(ctx context.Context, id string) (*model.SurveySession, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache; abandoned sessions expire after ttl
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "session:" + id
}

func (c *sessionCache) Set(ctx context.Context, session *model.SurveySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

// Get returns nil, nil when the session does not exist or has expired
func (c *sessionCache) Get(ctx context.Context, id string) (*model.SurveySession, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.SurveySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	if session.Answers == nil {
		session.Answers = make(model.Answers)
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
