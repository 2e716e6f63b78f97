package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"engagesurvey/internal/config"
	"engagesurvey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folders(n int) []model.Folder {
	out := make([]model.Folder, n)
	for i := range out {
		out[i] = model.Folder{Page: fmt.Sprintf("p%d", i%3), Sub: fmt.Sprintf("s%d", i)}
	}
	return out
}

func TestSampleFoldersProperties(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7+1))

		all := folders(int(rng.IntN(12)))
		answered := model.NewKeySet()
		for _, f := range all {
			if rng.IntN(3) == 0 {
				answered.Add(f.Key())
			}
		}
		// keys of folders that no longer exist must not matter
		answered.Add("gone/folder")

		remaining := len(unanswered(all, answered))
		for n := 0; n <= 6; n++ {
			got := SampleFolders(all, answered, n, rng)

			assert.Len(t, got, min(n, remaining), "seed %d n %d", seed, n)
			seen := model.NewKeySet()
			for _, f := range got {
				assert.False(t, answered.Has(f.Key()), "answered folder %s sampled", f.Key())
				assert.False(t, seen.Has(f.Key()), "folder %s sampled twice", f.Key())
				seen.Add(f.Key())
			}
		}
	}
}

func TestSampleFoldersDegradedBatch(t *testing.T) {
	all := []model.Folder{{Page: "a", Sub: "1"}, {Page: "a", Sub: "2"}, {Page: "b", Sub: "1"}}
	answered := model.NewKeySet("a/1", "b/1")

	got := SampleFolders(all, answered, 2, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, []model.Folder{{Page: "a", Sub: "2"}}, got)
}

func TestSampleFoldersNothingLeft(t *testing.T) {
	all := []model.Folder{{Page: "a", Sub: "1"}}

	assert.Empty(t, SampleFolders(all, model.NewKeySet("a/1"), 2, rand.New(rand.NewPCG(1, 2))))
	assert.Empty(t, SampleFolders(nil, nil, 2, rand.New(rand.NewPCG(1, 2))))
}

func TestSampleFoldersIsUniformEnough(t *testing.T) {
	all := folders(4)
	rng := rand.New(rand.NewPCG(42, 42))
	hits := make(map[model.ContentKey]int)

	for i := 0; i < 4000; i++ {
		for _, f := range SampleFolders(all, nil, 2, rng) {
			hits[f.Key()]++
		}
	}

	require.Len(t, hits, 4)
	for k, n := range hits {
		// each folder is expected 2000 times
		assert.InDelta(t, 2000, n, 200, "folder %s", k)
	}
}

func TestSampleBalancedPrefersLeastAnsweredPages(t *testing.T) {
	all := []model.Folder{
		{Page: "busy", Sub: "1"}, {Page: "busy", Sub: "2"},
		{Page: "quiet", Sub: "1"}, {Page: "quiet", Sub: "2"},
		{Page: "new", Sub: "1"},
	}
	counts := map[string]int{"busy": 9, "quiet": 2}

	for seed := uint64(0); seed < 20; seed++ {
		got := SampleBalanced(all, nil, 2, counts, rand.New(rand.NewPCG(seed, seed)))

		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].Page)
		assert.Equal(t, "quiet", got[1].Page)
	}
}

func TestSampleBalancedFillsFromRemainingPages(t *testing.T) {
	all := []model.Folder{
		{Page: "a", Sub: "1"}, {Page: "a", Sub: "2"}, {Page: "a", Sub: "3"},
		{Page: "b", Sub: "1"},
	}
	answered := model.NewKeySet("a/2")

	got := SampleBalanced(all, answered, 10, nil, rand.New(rand.NewPCG(3, 4)))

	keys := make([]string, len(got))
	for i, f := range got {
		keys[i] = string(f.Key())
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a/1", "a/3", "b/1"}, keys)
}

func TestNextBatchFivePoolsTwoFolders(t *testing.T) {
	repo := &stubResponseRepo{}
	sampler := newTestSampler(contentTree(1, 5, 3), repo, testStudy(2))

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 6, "2 folders with 3 faces each")

	// faces are grouped per folder and sorted by filename inside it
	first, second := items[0].Key(), items[3].Key()
	assert.NotEqual(t, first, second)
	for i, item := range items {
		want := first
		if i >= 3 {
			want = second
		}
		assert.Equal(t, want, item.Key())
		assert.Equal(t, "0.jpg", item.ContextImage)
	}
	assert.True(t, sort.SliceIsSorted(items[:3], func(i, j int) bool { return items[i].Face < items[j].Face }))
	assert.True(t, sort.SliceIsSorted(items[3:], func(i, j int) bool { return items[3+i].Face < items[3+j].Face }))
}

func TestNextBatchSkipsAnsweredFolders(t *testing.T) {
	repo := &stubResponseRepo{answered: model.NewKeySet("p0/s0", "p0/s1", "p0/s2", "p0/s3")}
	sampler := newTestSampler(contentTree(1, 5, 2), repo, testStudy(2))

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "only one folder is left")
	for _, item := range items {
		assert.Equal(t, model.ContentKey("p0/s4"), item.Key())
	}
}

func TestNextBatchExhausted(t *testing.T) {
	repo := &stubResponseRepo{answered: model.NewKeySet("p0/s0")}
	sampler := newTestSampler(contentTree(1, 1, 2), repo, testStudy(2))

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNextBatchStoreReadFailure(t *testing.T) {
	repo := &stubResponseRepo{answeredErr: errBoom}
	sampler := newTestSampler(contentTree(1, 3, 2), repo, testStudy(2))

	_, err := sampler.NextBatch(context.Background())
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.ErrorIs(t, err, errBoom)
}

func TestNextBatchBalanced(t *testing.T) {
	repo := &stubResponseRepo{pageCounts: map[string]int{"p0": 4, "p1": 0, "p2": 1}}
	study := testStudy(2)
	study.Sampling = config.SamplingBalanced
	sampler := newTestSampler(contentTree(3, 2, 1), repo, study)

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].Page)
	assert.Equal(t, "p2", items[1].Page)
}

func TestNextBatchExcludedPages(t *testing.T) {
	study := testStudy(5)
	study.ExcludedPages = []string{"p0"}
	sampler := newTestSampler(contentTree(2, 1, 1), &stubResponseRepo{}, study)

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Page)
}

func TestNextBatchSkipsFoldersWithoutFaces(t *testing.T) {
	fsys := contentTree(1, 2, 2)
	for name, file := range contentTree(2, 6, 0) {
		if strings.HasPrefix(name, "p1/") {
			fsys[name] = file
		}
	}

	for _, mode := range []string{config.SamplingUniform, config.SamplingBalanced} {
		study := testStudy(2)
		study.Sampling = mode
		// the empty page has the fewest responses, so balanced sampling tries it first
		repo := &stubResponseRepo{pageCounts: map[string]int{"p0": 3}}
		sampler := newTestSampler(fsys, repo, study)

		for i := 0; i < 50; i++ {
			items, err := sampler.NextBatch(context.Background())
			require.NoError(t, err)
			require.Len(t, items, 4, "%s: two folders with two faces each", mode)
			for _, item := range items {
				assert.Equal(t, "p0", item.Page)
				assert.NotEmpty(t, item.Face)
			}
		}
	}
}

func TestNextBatchOnlyEmptyFoldersLeft(t *testing.T) {
	fsys := contentTree(1, 1, 2)
	fsys["p0/empty/0.jpg"] = &fstest.MapFile{Data: []byte("ctx")}
	repo := &stubResponseRepo{answered: model.NewKeySet("p0/s0")}
	sampler := newTestSampler(fsys, repo, testStudy(2))

	items, err := sampler.NextBatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
