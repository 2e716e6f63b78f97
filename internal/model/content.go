package model

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// ContentKey identifies a page/sub-folder pair, the unit of "answered" exclusion
type ContentKey string

// KeySet is a set of content keys
type KeySet map[ContentKey]struct{}

// NewKeySet builds a set from the given keys
func NewKeySet(keys ...ContentKey) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set
func (s KeySet) Has(key ContentKey) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key into the set
func (s KeySet) Add(key ContentKey) {
	s[key] = struct{}{}
}

// Sorted returns the keys in lexicographic order
func (s KeySet) Sorted() []ContentKey {
	keys := make([]ContentKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Folder is a second-level content directory: root/{Page}/{Sub}
type Folder struct {
	Page string `json:"page" bson:"page"`
	Sub  string `json:"sub" bson:"sub"`
}

// Key returns the folder's content key
func (f Folder) Key() ContentKey {
	return ContentKey(f.Page + "/" + f.Sub)
}

// ContentItem is one rateable face image tied to its classroom context image
type ContentItem struct {
	Page         string `json:"page"`
	Sub          string `json:"sub"`
	Face         string `json:"face"`
	ContextImage string `json:"contextImage"`
}

// Folder returns the folder containing the item
func (c ContentItem) Folder() Folder {
	return Folder{Page: c.Page, Sub: c.Sub}
}

// Key returns the content key of the item's folder
func (c ContentItem) Key() ContentKey {
	return c.Folder().Key()
}

// Path is the slash-separated face path relative to the content root.
// Answers are keyed by it.
func (c ContentItem) Path() string {
	return path.Join(c.Page, c.Sub, c.Face)
}

// ContextPath is the path of the whole-class image shown alongside the face
func (c ContentItem) ContextPath() string {
	return path.Join(c.Page, c.Sub, c.ContextImage)
}

// FaceInfo is what a face filename encodes about the crop
type FaceInfo struct {
	Face string `json:"face"`
	X1   string `json:"x1,omitempty"`
	Y1   string `json:"y1,omitempty"`
	X2   string `json:"x2,omitempty"`
	Y2   string `json:"y2,omitempty"`
}

// Number returns the face number ("12" for face12-...), or the bare face name
func (f FaceInfo) Number() string {
	return strings.TrimPrefix(f.Face, "face")
}

var faceNamePattern = regexp.MustCompile(`^(face\d+)-(\d+)_(\d+)_(\d+)_(\d+)$`)

// ParseFaceFilename extracts face id and bounding box from names like
// "face87-1014_402_1058_449.jpg". Older "face_x1_y1_x2_y2" names are also accepted.
func ParseFaceFilename(filename string) FaceInfo {
	name := strings.TrimSuffix(filename, path.Ext(filename))

	if m := faceNamePattern.FindStringSubmatch(name); m != nil {
		return FaceInfo{Face: m[1], X1: m[2], Y1: m[3], X2: m[4], Y2: m[5]}
	}

	parts := strings.Split(name, "_")
	if len(parts) >= 5 {
		return FaceInfo{Face: parts[0], X1: parts[1], Y1: parts[2], X2: parts[3], Y2: parts[4]}
	}

	if i := strings.Index(name, "-"); i > 0 {
		name = name[:i]
	}
	return FaceInfo{Face: name}
}

// SplitAnswerPath recovers the folder from a face path produced by ContentItem.Path
func SplitAnswerPath(p string) (Folder, string, bool) {
	parts := strings.Split(p, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Folder{}, "", false
	}
	return Folder{Page: parts[0], Sub: parts[1]}, parts[2], true
}
