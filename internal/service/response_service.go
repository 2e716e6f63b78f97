package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"engagesurvey/internal/cache"
	"engagesurvey/internal/model"
	"engagesurvey/internal/repository"
)

// ResponseService wraps the response store and the answered-key cache
type ResponseService struct {
	repo          repository.ResponseRepo
	answeredCache cache.AnsweredCache
}

// NewResponseService creates a response service. answeredCache may be nil.
func NewResponseService(repo repository.ResponseRepo, answeredCache cache.AnsweredCache) *ResponseService {
	return &ResponseService{
		repo:          repo,
		answeredCache: answeredCache,
	}
}

// AnsweredKeys returns every folder key present in a stored response.
// A store failure is returned as ErrStoreRead and never treated as "nothing answered".
func (s *ResponseService) AnsweredKeys(ctx context.Context) (model.KeySet, error) {
	if s.answeredCache != nil {
		keys, found, err := s.answeredCache.Get(ctx)
		if err != nil {
			log.Printf("Answered cache read failed, falling back to store: %v", err)
		} else if found {
			return keys, nil
		}
	}

	keys, err := s.repo.AnsweredContentKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	if s.answeredCache != nil {
		if err := s.answeredCache.Set(ctx, keys); err != nil {
			log.Printf("Answered cache write failed: %v", err)
		}
	}
	return keys, nil
}

// PageCounts returns the number of responses per page folder
func (s *ResponseService) PageCounts(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.PageResponseCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return counts, nil
}

// Record persists a completed survey and adds its folders to the cached
// answered keys. If the cache cannot be updated it is invalidated instead;
// when that fails too ErrAnsweredCache is returned and the caller may retry.
func (s *ResponseService) Record(ctx context.Context, response *model.SurveyResponse) error {
	if err := s.repo.Record(ctx, response); err != nil {
		return err
	}
	if s.answeredCache == nil {
		return nil
	}

	keys := make([]model.ContentKey, len(response.Folders))
	for i, f := range response.Folders {
		keys[i] = model.ContentKey(f)
	}
	addErr := s.answeredCache.Add(ctx, keys...)
	if addErr == nil {
		return nil
	}
	log.Printf("Answered cache update failed for response %s: %v", response.ID, addErr)

	if err := s.answeredCache.Invalidate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrAnsweredCache, errors.Join(addErr, err))
	}
	return nil
}

// List returns all responses, newest first
func (s *ResponseService) List(ctx context.Context) ([]*model.SurveyResponse, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a response, nil if it does not exist
func (s *ResponseService) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	return s.repo.GetByID(ctx, id)
}

// Count returns the number of stored responses
func (s *ResponseService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CountByEmail returns how many surveys a participant email has submitted
func (s *ResponseService) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.repo.CountByEmail(ctx, email)
}
