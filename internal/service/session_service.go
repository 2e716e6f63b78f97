package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"engagesurvey/internal/cache"
	"engagesurvey/internal/model"

	"github.com/google/uuid"
)

var (
	ErrContentUnavailable = errors.New("no survey content available")
	ErrStoreRead          = errors.New("could not read stored responses")
	ErrStoreWrite         = errors.New("could not save survey")
	ErrSessionNotFound    = errors.New("survey session not found")
	ErrInvalidRating      = errors.New("rating is not one of the allowed values")
	ErrUnknownItem        = errors.New("image is not part of this survey")
	ErrNotReady           = errors.New("survey is not ready to submit")
	ErrAnsweredCache      = errors.New("answered folders cache is out of date")
)

// Sampler produces the ordered faces for a new session
type Sampler interface {
	NextBatch(ctx context.Context) ([]model.ContentItem, error)
}

// ResponseRecorder persists completed surveys
type ResponseRecorder interface {
	Record(ctx context.Context, response *model.SurveyResponse) error
}

// SessionService drives a participant through idle -> in_progress -> submitted/cancelled
type SessionService struct {
	sampler     Sampler
	recorder    ResponseRecorder
	sessions    cache.SessionCache
	scale       model.RatingScale
	broadcaster Broadcaster

	now   func() time.Time
	newID func() string
}

// NewSessionService creates a new session service
func NewSessionService(sampler Sampler, recorder ResponseRecorder, sessions cache.SessionCache, scale model.RatingScale) *SessionService {
	return &SessionService{
		sampler:  sampler,
		recorder: recorder,
		sessions: sessions,
		scale:    scale,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SetBroadcaster sets the broadcaster for submission events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Scale returns the allowed ratings
func (s *SessionService) Scale() model.RatingScale {
	return s.scale
}

// Start samples a fresh batch and opens a session on its first face.
// An empty batch is ErrContentUnavailable; no session is created.
func (s *SessionService) Start(ctx context.Context, participant model.Participant) (*model.SurveySession, error) {
	items, err := s.sampler.NextBatch(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrContentUnavailable
	}

	session := model.NewSurveySession(s.newID(), participant, items, s.now())
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Printf("Session %s started with %d faces", session.ID, len(items))
	return session, nil
}

// Get retrieves an in-progress session
func (s *SessionService) Get(ctx context.Context, id string) (*model.SurveySession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Rate records value for the face at path, or for the current face when path is empty
func (s *SessionService) Rate(ctx context.Context, id, path, value string) (*model.SurveySession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if path == "" {
		item, ok := session.Current()
		if !ok {
			return nil, ErrUnknownItem
		}
		path = item.Path()
	}
	if !s.scale.Contains(value) {
		return nil, ErrInvalidRating
	}
	if !session.HasItem(path) {
		return nil, ErrUnknownItem
	}

	session.Rate(path, value)
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Advance moves to the next face. moved is false when the current face is
// unrated or already last; the session is then unchanged.
func (s *SessionService) Advance(ctx context.Context, id string) (session *model.SurveySession, moved bool, err error) {
	return s.move(ctx, id, (*model.SurveySession).Advance)
}

// Retreat moves to the previous face. moved is false on the first face.
func (s *SessionService) Retreat(ctx context.Context, id string) (session *model.SurveySession, moved bool, err error) {
	return s.move(ctx, id, (*model.SurveySession).Retreat)
}

func (s *SessionService) move(ctx context.Context, id string, step func(*model.SurveySession) bool) (*model.SurveySession, bool, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !step(session) {
		return session, false, nil
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to save session: %w", err)
	}
	return session, true, nil
}

// Submit persists the session's answers. It requires the last face to be
// current and rated, otherwise ErrNotReady and nothing is written. When the
// store fails the session is left in progress with every answer intact so
// the participant can submit again; the response ID is the session ID, so a
// retry overwrites rather than duplicates.
func (s *SessionService) Submit(ctx context.Context, id string) (*model.SurveyResponse, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.ReadyToSubmit() {
		return nil, ErrNotReady
	}

	response := model.NewSurveyResponse(session, session.Elapsed(s.now()))
	if err := s.recorder.Record(ctx, response); err != nil {
		log.Printf("Session %s submit failed: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		log.Printf("Session %s submitted but not cleared: %v", id, err)
	}

	log.Printf("Session %s submitted: %d answers in %.2fs", id, len(response.Answers), response.Duration)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins(MsgSurveySubmitted, SubmissionEvent{
			ResponseID: response.ID,
			Folders:    response.Folders,
			Answers:    len(response.Answers),
			Duration:   response.Duration,
			At:         s.now(),
		})
	}
	return response, nil
}

// Cancel discards the session without persisting anything
func (s *SessionService) Cancel(ctx context.Context, id string) (*model.SurveySession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}
	session.Reset(model.SessionCancelled)
	log.Printf("Session %s cancelled", id)
	return session, nil
}
