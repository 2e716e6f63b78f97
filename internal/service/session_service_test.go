package service

import (
	"context"
	"testing"
	"time"

	"engagesurvey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc      *SessionService
	repo     *stubResponseRepo
	sessions *memSessionCache
	clock    time.Time
}

func newSessionFixture(t *testing.T, pages, subs, faces, batch int) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		repo:     &stubResponseRepo{},
		sessions: newMemSessionCache(),
		clock:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	responses := NewResponseService(f.repo, nil)
	sampler := newTestSampler(contentTree(pages, subs, faces), f.repo, testStudy(batch))

	f.svc = NewSessionService(sampler, responses, f.sessions, model.DefaultRatingScale())
	f.svc.now = func() time.Time { return f.clock }
	f.svc.newID = func() string { return "sess-1" }
	return f
}

// rateAll rates and advances through every face of the session
func rateAll(t *testing.T, svc *SessionService, id string) *model.SurveySession {
	t.Helper()
	ctx := context.Background()
	var session *model.SurveySession
	for {
		var err error
		session, err = svc.Rate(ctx, id, "", "7")
		require.NoError(t, err)
		if session.Position == session.LastIndex() {
			return session
		}
		var moved bool
		session, moved, err = svc.Advance(ctx, id)
		require.NoError(t, err)
		require.True(t, moved)
	}
}

func TestSessionFullFlow(t *testing.T) {
	f := newSessionFixture(t, 1, 5, 3, 2)
	ctx := context.Background()
	bc := &recordingBroadcaster{}
	f.svc.SetBroadcaster(bc)

	session, err := f.svc.Start(ctx, model.Participant{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionInProgress, session.State)
	assert.Equal(t, 0, session.Position)
	assert.Len(t, session.Items, 6)
	assert.Empty(t, session.Answers)

	session = rateAll(t, f.svc, session.ID)
	assert.True(t, session.ReadyToSubmit())

	f.clock = f.clock.Add(83*time.Second + 456*time.Millisecond)
	resp, err := f.svc.Submit(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", resp.ID)
	assert.Equal(t, "Ada", resp.Name)
	assert.Len(t, resp.Answers, 6)
	assert.Len(t, resp.Folders, 2)
	assert.Equal(t, 83.46, resp.Duration)
	for _, a := range resp.Answers {
		assert.Equal(t, "7", a.Value)
	}

	require.Len(t, f.repo.records, 1)
	assert.Equal(t, 0, f.sessions.Len(), "session cleared after submit")

	_, err = f.svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.Equal(t, []string{MsgSurveySubmitted}, bc.msgs)
	event, ok := bc.last.(SubmissionEvent)
	require.True(t, ok)
	assert.Equal(t, "sess-1", event.ResponseID)
	assert.Equal(t, 6, event.Answers)
}

func TestSessionSubmittedFoldersAreNotSampledAgain(t *testing.T) {
	f := newSessionFixture(t, 1, 3, 1, 2)
	ctx := context.Background()

	first, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)
	rateAll(t, f.svc, first.ID)
	resp, err := f.svc.Submit(ctx, first.ID)
	require.NoError(t, err)

	f.svc.newID = func() string { return "sess-2" }
	second, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)

	require.Len(t, second.Items, 1, "one folder left")
	assert.NotContains(t, resp.Folders, string(second.Items[0].Key()))
}

func TestSessionAdvanceRequiresRating(t *testing.T) {
	f := newSessionFixture(t, 1, 2, 2, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)

	after, moved, err := f.svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 0, after.Position)

	_, err = f.svc.Rate(ctx, session.ID, "", model.NoContextImage)
	require.NoError(t, err)

	after, moved, err = f.svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, after.Position)

	// last item: rated or not, advance never moves past it
	_, err = f.svc.Rate(ctx, session.ID, "", "3")
	require.NoError(t, err)
	after, moved, err = f.svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 1, after.Position)
}

func TestSessionRetreatKeepsAnswers(t *testing.T) {
	f := newSessionFixture(t, 1, 1, 3, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)

	_, moved, err := f.svc.Retreat(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, moved, "cannot retreat from the first face")

	_, err = f.svc.Rate(ctx, session.ID, "", "2")
	require.NoError(t, err)
	_, _, err = f.svc.Advance(ctx, session.ID)
	require.NoError(t, err)

	back, moved, err := f.svc.Retreat(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 0, back.Position)
	assert.Equal(t, "2", back.Answers[back.Items[0].Path()])

	// change of mind overwrites the earlier rating
	changed, err := f.svc.Rate(ctx, session.ID, "", "9")
	require.NoError(t, err)
	assert.Equal(t, "9", changed.Answers[changed.Items[0].Path()])
	assert.Len(t, changed.Answers, 1)
}

func TestSessionRateValidation(t *testing.T) {
	f := newSessionFixture(t, 1, 1, 2, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)

	_, err = f.svc.Rate(ctx, session.ID, "", "11")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = f.svc.Rate(ctx, session.ID, "p9/s9/face1.jpg", "5")
	assert.ErrorIs(t, err, ErrUnknownItem)

	// a face other than the current one may be rated by path
	other := session.Items[1].Path()
	rated, err := f.svc.Rate(ctx, session.ID, other, "5")
	require.NoError(t, err)
	assert.Equal(t, "5", rated.Answers[other])
	assert.Equal(t, 0, rated.Position)

	_, err = f.svc.Rate(ctx, "missing", "", "5")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionSubmitNotReady(t *testing.T) {
	f := newSessionFixture(t, 1, 1, 2, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)
	_, err = f.svc.Rate(ctx, session.ID, "", "4")
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, f.repo.records)
	assert.Equal(t, 1, f.sessions.Len())

	// on the last face but unrated
	_, _, err = f.svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, f.repo.records)
}

func TestSessionSubmitStoreFailureKeepsSession(t *testing.T) {
	f := newSessionFixture(t, 1, 2, 2, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{Name: "Bo"})
	require.NoError(t, err)
	rated := rateAll(t, f.svc, session.ID)

	f.repo.recordErr = errBoom
	_, err = f.svc.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, ErrStoreWrite)
	assert.ErrorIs(t, err, errBoom)

	kept, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionInProgress, kept.State)
	assert.Equal(t, rated.Answers, kept.Answers)
	assert.Equal(t, rated.Position, kept.Position)

	f.repo.recordErr = nil
	resp, err := f.svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, resp.ID)
	assert.Len(t, f.repo.records, 1)
}

func TestSessionCancelDiscards(t *testing.T) {
	f := newSessionFixture(t, 1, 1, 2, 1)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, model.Participant{})
	require.NoError(t, err)
	_, err = f.svc.Rate(ctx, session.ID, "", "1")
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCancelled, cancelled.State)
	assert.Empty(t, cancelled.Items)
	assert.Empty(t, cancelled.Answers)

	assert.Empty(t, f.repo.records)
	assert.Equal(t, 0, f.sessions.Len())

	_, err = f.svc.Cancel(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStartWithoutContent(t *testing.T) {
	f := newSessionFixture(t, 0, 0, 0, 2)

	_, err := f.svc.Start(context.Background(), model.Participant{})
	assert.ErrorIs(t, err, ErrContentUnavailable)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestSessionStartStoreReadFailure(t *testing.T) {
	f := newSessionFixture(t, 1, 2, 1, 1)
	f.repo.answeredErr = errBoom

	_, err := f.svc.Start(context.Background(), model.Participant{})
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.Equal(t, 0, f.sessions.Len())
}
