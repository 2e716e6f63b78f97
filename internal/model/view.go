package model

// ItemView is the current face as presented to a participant
type ItemView struct {
	Path        string   `json:"path"`
	Folder      string   `json:"folder"`
	Label       string   `json:"label"`
	Face        FaceInfo `json:"face"`
	FaceURL     string   `json:"faceUrl"`
	ContextURL  string   `json:"contextUrl"`
	Selected    string   `json:"selected,omitempty"`
	FolderIndex int      `json:"folderIndex"`
}

// SessionView is what the survey page renders for one step
type SessionView struct {
	ID         string       `json:"id"`
	State      SessionState `json:"state"`
	Position   int          `json:"position"`
	Total      int          `json:"total"`
	Answered   int          `json:"answered"`
	Item       *ItemView    `json:"item,omitempty"`
	Options    RatingScale  `json:"options"`
	CanAdvance bool         `json:"canAdvance"`
	CanRetreat bool         `json:"canRetreat"`
	CanSubmit  bool         `json:"canSubmit"`
}

// NewSessionView renders s. contentBase is the URL prefix images are served under.
func NewSessionView(s *SurveySession, scale RatingScale, contentBase string) *SessionView {
	view := &SessionView{
		ID:         s.ID,
		State:      s.State,
		Position:   s.Position,
		Total:      len(s.Items),
		Answered:   len(s.Answers),
		Options:    scale,
		CanAdvance: s.CanAdvance(),
		CanRetreat: s.CanRetreat(),
		CanSubmit:  s.ReadyToSubmit(),
	}

	item, ok := s.Current()
	if !ok {
		return view
	}

	info := ParseFaceFilename(item.Face)
	view.Item = &ItemView{
		Path:        item.Path(),
		Folder:      string(item.Key()),
		Label:       "Face " + info.Number(),
		Face:        info,
		FaceURL:     contentBase + "/" + item.Path(),
		ContextURL:  contentBase + "/" + item.ContextPath(),
		Selected:    s.Answers[item.Path()],
		FolderIndex: folderIndex(s.Items, s.Position),
	}
	return view
}

// folderIndex is the 0-based ordinal of the folder holding items[pos]
func folderIndex(items []ContentItem, pos int) int {
	idx := 0
	for i := 1; i <= pos; i++ {
		if items[i].Key() != items[i-1].Key() {
			idx++
		}
	}
	return idx
}
