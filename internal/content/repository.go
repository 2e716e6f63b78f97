package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"engagesurvey/internal/model"
)

// Repository enumerates page folders and face images under a content root.
// Only root/{page}/{sub} directories are recognised.
type Repository interface {
	ListContent() ([]model.Folder, error)
	ListFaceImages(page, sub string) ([]string, error)
	FS() fs.FS
}

// Options control which folders and files are visible
type Options struct {
	FacePrefix      string
	ImageExtensions []string
	ExcludedPages   []string
}

type fsRepository struct {
	fsys     fs.FS
	prefix   string
	exts     map[string]bool
	excluded map[string]bool
}

// NewRepository creates a repository over fsys, usually os.DirFS(contentRoot)
func NewRepository(fsys fs.FS, opts Options) Repository {
	exts := make(map[string]bool, len(opts.ImageExtensions))
	for _, e := range opts.ImageExtensions {
		exts[strings.ToLower(e)] = true
	}
	excluded := make(map[string]bool, len(opts.ExcludedPages))
	for _, p := range opts.ExcludedPages {
		excluded[p] = true
	}
	return &fsRepository{
		fsys:     fsys,
		prefix:   opts.FacePrefix,
		exts:     exts,
		excluded: excluded,
	}
}

func (r *fsRepository) FS() fs.FS {
	return r.fsys
}

func (r *fsRepository) ListContent() ([]model.Folder, error) {
	pages, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content root: %w", err)
	}

	var folders []model.Folder
	for _, page := range pages {
		if !page.IsDir() || r.excluded[page.Name()] {
			continue
		}

		subs, err := fs.ReadDir(r.fsys, page.Name())
		if err != nil {
			return nil, fmt.Errorf("read page folder %s: %w", page.Name(), err)
		}
		for _, sub := range subs {
			if sub.IsDir() {
				folders = append(folders, model.Folder{Page: page.Name(), Sub: sub.Name()})
			}
		}
	}

	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Page != folders[j].Page {
			return folders[i].Page < folders[j].Page
		}
		return folders[i].Sub < folders[j].Sub
	})
	return folders, nil
}

func (r *fsRepository) ListFaceImages(page, sub string) ([]string, error) {
	dir := path.Join(page, sub)
	if !fs.ValidPath(dir) {
		return nil, fmt.Errorf("invalid folder %q", dir)
	}

	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var faces []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, r.prefix) {
			continue
		}
		if r.exts[strings.ToLower(path.Ext(name))] {
			faces = append(faces, name)
		}
	}
	sort.Strings(faces)
	return faces, nil
}
