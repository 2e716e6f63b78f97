package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing/fstest"

	"engagesurvey/internal/config"
	"engagesurvey/internal/content"
	"engagesurvey/internal/model"
)

var errBoom = errors.New("boom")

type stubResponseRepo struct {
	mu         sync.Mutex
	records    []*model.SurveyResponse
	answered   model.KeySet
	pageCounts map[string]int

	recordErr   error
	answeredErr error

	answeredCalls int
}

func (r *stubResponseRepo) Record(_ context.Context, resp *model.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recordErr != nil {
		return r.recordErr
	}
	for i, existing := range r.records {
		if existing.ID == resp.ID {
			r.records[i] = resp
			return nil
		}
	}
	r.records = append(r.records, resp)
	return nil
}

func (r *stubResponseRepo) GetByID(_ context.Context, id string) (*model.SurveyResponse, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *stubResponseRepo) List(context.Context) ([]*model.SurveyResponse, error) {
	return r.records, nil
}

func (r *stubResponseRepo) Count(context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *stubResponseRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.Email == email {
			n++
		}
	}
	return n, nil
}

func (r *stubResponseRepo) AnsweredContentKeys(context.Context) (model.KeySet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answeredCalls++
	if r.answeredErr != nil {
		return nil, r.answeredErr
	}
	keys := model.NewKeySet()
	for k := range r.answered {
		keys.Add(k)
	}
	for _, rec := range r.records {
		for _, f := range rec.Folders {
			keys.Add(model.ContentKey(f))
		}
	}
	return keys, nil
}

func (r *stubResponseRepo) PageResponseCounts(context.Context) (map[string]int, error) {
	if r.answeredErr != nil {
		return nil, r.answeredErr
	}
	return r.pageCounts, nil
}

func (r *stubResponseRepo) EnsureIndexes(context.Context) error {
	return nil
}

type stubAnsweredCache struct {
	keys        model.KeySet
	found       bool
	invalidated int
	added       []model.ContentKey

	addErr        error
	invalidateErr error
}

func (c *stubAnsweredCache) Get(context.Context) (model.KeySet, bool, error) {
	return c.keys, c.found, nil
}

func (c *stubAnsweredCache) Set(_ context.Context, keys model.KeySet) error {
	if c.keys == nil {
		c.keys = model.NewKeySet()
	}
	for k := range keys {
		c.keys.Add(k)
	}
	c.found = true
	return nil
}

func (c *stubAnsweredCache) Add(_ context.Context, keys ...model.ContentKey) error {
	if c.addErr != nil {
		return c.addErr
	}
	if c.keys == nil {
		c.keys = model.NewKeySet()
	}
	for _, k := range keys {
		c.keys.Add(k)
	}
	c.added = append(c.added, keys...)
	return nil
}

func (c *stubAnsweredCache) Invalidate(context.Context) error {
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	c.keys, c.found = nil, false
	c.invalidated++
	return nil
}

type memSessionCache struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{sessions: make(map[string][]byte)}
}

// sessions are stored as snapshots so callers cannot mutate cached state
func (c *memSessionCache) Set(_ context.Context, s *model.SurveySession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := marshalSession(s)
	if err != nil {
		return err
	}
	c.sessions[s.ID] = data
	return nil
}

func (c *memSessionCache) Get(_ context.Context, id string) (*model.SurveySession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	return unmarshalSession(data)
}

func (c *memSessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

func (c *memSessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

type recordingBroadcaster struct {
	msgs []string
	last interface{}
}

func (b *recordingBroadcaster) BroadcastToAdmins(msgType string, payload interface{}) {
	b.msgs = append(b.msgs, msgType)
	b.last = payload
}

// contentTree builds pages "p0".."p{pages-1}", each with subs folders of faces face images
func contentTree(pages, subs, faces int) fstest.MapFS {
	fsys := fstest.MapFS{}
	for p := 0; p < pages; p++ {
		for s := 0; s < subs; s++ {
			dir := fmt.Sprintf("p%d/s%d", p, s)
			fsys[dir+"/0.jpg"] = &fstest.MapFile{Data: []byte("ctx")}
			for f := faces; f >= 1; f-- {
				name := fmt.Sprintf("%s/face%d-%d_%d_%d_%d.jpg", dir, f, f, f, f+10, f+10)
				fsys[name] = &fstest.MapFile{Data: []byte("face")}
			}
		}
	}
	return fsys
}

func testStudy(batch int) *config.StudyConfig {
	study := config.DefaultStudy()
	study.BatchSize = batch
	return study
}

func newTestSampler(fsys fstest.MapFS, repo *stubResponseRepo, study *config.StudyConfig) *SamplerService {
	contentRepo := content.NewRepository(fsys, content.Options{
		FacePrefix:      study.FacePrefix,
		ImageExtensions: study.ImageExtensions,
		ExcludedPages:   study.ExcludedPages,
	})
	return NewSamplerService(contentRepo, NewResponseService(repo, nil), study)
}

func marshalSession(s *model.SurveySession) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalSession(data []byte) (*model.SurveySession, error) {
	var s model.SurveySession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Answers == nil {
		s.Answers = make(model.Answers)
	}
	return &s, nil
}
