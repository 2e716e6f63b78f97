package model

import "time"

type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionInProgress SessionState = "in_progress"
	SessionSubmitted  SessionState = "submitted"
	SessionCancelled  SessionState = "cancelled"
)

// Answers maps a face path to its rating. Unrated faces are absent.
type Answers map[string]string

// SurveySession is one participant's progress through a sampled batch.
// It is owned by the caller and addressed by ID; nothing about it is global.
type SurveySession struct {
	ID          string        `json:"id"`
	State       SessionState  `json:"state"`
	Participant Participant   `json:"participant"`
	Items       []ContentItem `json:"items"`
	Position    int           `json:"position"`
	Answers     Answers       `json:"answers"`
	StartedAt   time.Time     `json:"startedAt"`
}

// NewSurveySession creates an in-progress session positioned on the first item
func NewSurveySession(id string, participant Participant, items []ContentItem, now time.Time) *SurveySession {
	return &SurveySession{
		ID:          id,
		State:       SessionInProgress,
		Participant: participant,
		Items:       items,
		Position:    0,
		Answers:     make(Answers),
		StartedAt:   now,
	}
}

// LastIndex is the index of the final item, -1 for an empty batch
func (s *SurveySession) LastIndex() int {
	return len(s.Items) - 1
}

// Current returns the item at the current position
func (s *SurveySession) Current() (ContentItem, bool) {
	if s.Position < 0 || s.Position >= len(s.Items) {
		return ContentItem{}, false
	}
	return s.Items[s.Position], true
}

// HasItem reports whether path is one of the session's face paths
func (s *SurveySession) HasItem(path string) bool {
	for _, item := range s.Items {
		if item.Path() == path {
			return true
		}
	}
	return false
}

// CurrentRated reports whether the current item has a recorded rating
func (s *SurveySession) CurrentRated() bool {
	item, ok := s.Current()
	if !ok {
		return false
	}
	_, rated := s.Answers[item.Path()]
	return rated
}

// Rate records or overwrites the rating for path. Position does not move.
// Callers validate value against the rating scale and path against HasItem.
func (s *SurveySession) Rate(path, value string) {
	if s.Answers == nil {
		s.Answers = make(Answers)
	}
	s.Answers[path] = value
}

// CanAdvance is true when not on the last item and the current item is rated
func (s *SurveySession) CanAdvance() bool {
	return s.State == SessionInProgress && s.Position < s.LastIndex() && s.CurrentRated()
}

// Advance moves forward one item. It is a no-op unless CanAdvance.
func (s *SurveySession) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.Position++
	return true
}

// CanRetreat is true when there is a previous item. No rating is required to go back.
func (s *SurveySession) CanRetreat() bool {
	return s.State == SessionInProgress && s.Position > 0
}

// Retreat moves back one item. It is a no-op unless CanRetreat.
func (s *SurveySession) Retreat() bool {
	if !s.CanRetreat() {
		return false
	}
	s.Position--
	return true
}

// ReadyToSubmit is true on the last item once it has been rated
func (s *SurveySession) ReadyToSubmit() bool {
	return s.State == SessionInProgress && len(s.Items) > 0 && s.Position == s.LastIndex() && s.CurrentRated()
}

// Elapsed is the time since the session started, in seconds rounded to 2 decimals
func (s *SurveySession) Elapsed(now time.Time) float64 {
	secs := now.Sub(s.StartedAt).Seconds()
	return float64(int64(secs*100+0.5)) / 100
}

// Reset clears every field and moves the session to state
func (s *SurveySession) Reset(state SessionState) {
	s.State = state
	s.Items = nil
	s.Position = 0
	s.Answers = Answers{}
	s.StartedAt = time.Time{}
}
