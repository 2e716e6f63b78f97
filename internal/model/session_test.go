package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batch() []ContentItem {
	return []ContentItem{
		{Page: "p", Sub: "a", Face: "face1-1_1_2_2.jpg", ContextImage: "0.jpg"},
		{Page: "p", Sub: "a", Face: "face2-3_3_4_4.jpg", ContextImage: "0.jpg"},
		{Page: "q", Sub: "b", Face: "face7.jpg", ContextImage: "0.jpg"},
	}
}

func TestSurveySessionNavigation(t *testing.T) {
	s := NewSurveySession("id", Participant{}, batch(), time.Now())

	assert.Equal(t, SessionInProgress, s.State)
	assert.False(t, s.CanRetreat())
	assert.False(t, s.CanAdvance(), "current face is unrated")
	assert.False(t, s.Advance())
	assert.Equal(t, 0, s.Position)

	s.Rate(s.Items[0].Path(), "3")
	require.True(t, s.Advance())
	assert.Equal(t, 1, s.Position)
	assert.True(t, s.CanRetreat())

	require.True(t, s.Retreat())
	assert.Equal(t, 0, s.Position)
	assert.Equal(t, "3", s.Answers[s.Items[0].Path()])

	require.True(t, s.Advance())
	s.Rate(s.Items[1].Path(), "4")
	require.True(t, s.Advance())

	assert.False(t, s.ReadyToSubmit())
	s.Rate(s.Items[2].Path(), NoContextImage)
	assert.True(t, s.ReadyToSubmit())
	assert.False(t, s.Advance(), "already on the last face")
}

func TestSurveySessionEmpty(t *testing.T) {
	s := NewSurveySession("id", Participant{}, nil, time.Now())

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.CanAdvance())
	assert.False(t, s.ReadyToSubmit())
}

func TestSurveySessionElapsedAndReset(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSurveySession("id", Participant{Name: "Ada"}, batch(), start)
	s.Rate(s.Items[0].Path(), "1")

	assert.Equal(t, 12.34, s.Elapsed(start.Add(12344*time.Millisecond)))

	s.Reset(SessionCancelled)
	assert.Equal(t, SessionCancelled, s.State)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Answers)
	assert.Equal(t, 0, s.Position)
	assert.False(t, s.CanRetreat())
}

func TestNewSurveyResponse(t *testing.T) {
	s := NewSurveySession("id", Participant{Name: "Ada", Email: "a@b.c"}, batch(), time.Now())
	for _, item := range s.Items {
		s.Rate(item.Path(), "5")
	}

	resp := NewSurveyResponse(s, 1.5)

	assert.Equal(t, "id", resp.ID)
	assert.Equal(t, "Ada", resp.Name)
	assert.Equal(t, []string{"p/a", "q/b"}, resp.Folders)
	require.Len(t, resp.Answers, 3)
	assert.Equal(t, FaceRating{
		Path: "p/a/face1-1_1_2_2.jpg", Folder: "p/a", Page: "p", Face: "face1-1_1_2_2.jpg", Value: "5",
	}, resp.Answers[0])
	assert.Equal(t, s.Answers, resp.AnswerMap())
}

func TestNewSessionView(t *testing.T) {
	s := NewSurveySession("id", Participant{}, batch(), time.Now())
	s.Rate(s.Items[0].Path(), "2")
	s.Advance()
	s.Rate(s.Items[1].Path(), "6")
	s.Advance()

	view := NewSessionView(s, DefaultRatingScale(), "/v1/content")

	assert.Equal(t, 2, view.Position)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 2, view.Answered)
	assert.True(t, view.CanRetreat)
	assert.False(t, view.CanAdvance)
	assert.False(t, view.CanSubmit)
	require.NotNil(t, view.Item)
	assert.Equal(t, "Face 7", view.Item.Label)
	assert.Equal(t, "/v1/content/q/b/face7.jpg", view.Item.FaceURL)
	assert.Equal(t, "/v1/content/q/b/0.jpg", view.Item.ContextURL)
	assert.Equal(t, 1, view.Item.FolderIndex)
	assert.Empty(t, view.Item.Selected)
}
