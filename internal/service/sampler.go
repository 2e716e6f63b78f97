package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"engagesurvey/internal/config"
	"engagesurvey/internal/content"
	"engagesurvey/internal/model"
)

// SampleFolders draws up to n folders whose keys are not in answered, uniformly
// and without replacement. When fewer than n remain, all of them are returned.
func SampleFolders(all []model.Folder, answered model.KeySet, n int, rng *rand.Rand) []model.Folder {
	candidates := unanswered(all, answered)
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	if len(candidates) < n {
		return candidates
	}

	perm := rng.Perm(len(candidates))
	picked := make([]model.Folder, n)
	for i := range picked {
		picked[i] = candidates[perm[i]]
	}
	return picked
}

// SampleBalanced is SampleFolders with a preference for pages that have
// received the fewest responses: one random folder is taken from each page
// in ascending response order, round-robin, until n are picked.
func SampleBalanced(all []model.Folder, answered model.KeySet, n int, pageCounts map[string]int, rng *rand.Rand) []model.Folder {
	candidates := unanswered(all, answered)
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	byPage := make(map[string][]model.Folder)
	var pages []string
	for _, f := range candidates {
		if _, ok := byPage[f.Page]; !ok {
			pages = append(pages, f.Page)
		}
		byPage[f.Page] = append(byPage[f.Page], f)
	}

	// shuffle first so equally answered pages are visited in random order
	rng.Shuffle(len(pages), func(i, j int) { pages[i], pages[j] = pages[j], pages[i] })
	sort.SliceStable(pages, func(i, j int) bool { return pageCounts[pages[i]] < pageCounts[pages[j]] })
	for _, p := range pages {
		folders := byPage[p]
		rng.Shuffle(len(folders), func(i, j int) { folders[i], folders[j] = folders[j], folders[i] })
	}

	var picked []model.Folder
	for len(picked) < n {
		progressed := false
		for _, p := range pages {
			if len(picked) == n {
				break
			}
			if folders := byPage[p]; len(folders) > 0 {
				picked = append(picked, folders[0])
				byPage[p] = folders[1:]
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return picked
}

func unanswered(all []model.Folder, answered model.KeySet) []model.Folder {
	var candidates []model.Folder
	for _, f := range all {
		if !answered.Has(f.Key()) {
			candidates = append(candidates, f)
		}
	}
	return candidates
}

// SamplerService draws the batch of faces for a new session
type SamplerService struct {
	content   content.Repository
	responses *ResponseService
	study     *config.StudyConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSamplerService creates a sampler seeded from the runtime's random source
func NewSamplerService(contentRepo content.Repository, responses *ResponseService, study *config.StudyConfig) *SamplerService {
	return &SamplerService{
		content:   contentRepo,
		responses: responses,
		study:     study,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NextBatch lists all content, drops answered folders and folders without
// face images, samples a batch and expands each folder into its faces in
// filename order.
func (s *SamplerService) NextBatch(ctx context.Context) ([]model.ContentItem, error) {
	all, err := s.content.ListContent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}

	answered, err := s.responses.AnsweredKeys(ctx)
	if err != nil {
		return nil, err
	}

	candidates, faces, err := s.withFaces(unanswered(all, answered))
	if err != nil {
		return nil, err
	}

	var folders []model.Folder
	if s.study.Sampling == config.SamplingBalanced {
		counts, err := s.responses.PageCounts(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		folders = SampleBalanced(candidates, answered, s.study.BatchSize, counts, s.rng)
		s.mu.Unlock()
	} else {
		s.mu.Lock()
		folders = SampleFolders(candidates, answered, s.study.BatchSize, s.rng)
		s.mu.Unlock()
	}

	var items []model.ContentItem
	for _, f := range folders {
		for _, face := range faces[f.Key()] {
			items = append(items, model.ContentItem{
				Page:         f.Page,
				Sub:          f.Sub,
				Face:         face,
				ContextImage: s.study.ContextImage,
			})
		}
	}
	return items, nil
}

// withFaces keeps the folders holding at least one face image. A folder
// with none could never be answered, so it would be drawn again forever.
func (s *SamplerService) withFaces(folders []model.Folder) ([]model.Folder, map[model.ContentKey][]string, error) {
	kept := make([]model.Folder, 0, len(folders))
	faces := make(map[model.ContentKey][]string, len(folders))
	for _, f := range folders {
		names, err := s.content.ListFaceImages(f.Page, f.Sub)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
		}
		if len(names) == 0 {
			continue
		}
		kept = append(kept, f)
		faces[f.Key()] = names
	}
	return kept, faces, nil
}
