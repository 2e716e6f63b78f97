package model

import (
	"sort"
	"time"
)

// FaceRating is one stored rating. Answers are persisted as a list of these so
// that face paths, which contain dots, never become BSON field names.
type FaceRating struct {
	Path   string `json:"path" bson:"path"`
	Folder string `json:"folder" bson:"folder"` // ContentKey of the face's folder
	Page   string `json:"page" bson:"page"`
	Face   string `json:"face" bson:"face"`
	Value  string `json:"value" bson:"value"`
}

// SurveyResponse is a completed survey. It is created once at submission and never mutated.
type SurveyResponse struct {
	ID           string       `json:"id" bson:"_id"`
	Name         string       `json:"name" bson:"name"`
	Email        string       `json:"email" bson:"email"`
	Demographics Demographics `json:"demographics" bson:"demographics"`
	Timestamp    time.Time    `json:"timestamp" bson:"timestamp"` // assigned by the database
	Answers      []FaceRating `json:"answers" bson:"answers"`
	Folders      []string     `json:"folders" bson:"folders"`
	Duration     float64      `json:"duration" bson:"duration"` // seconds
}

// NewSurveyResponse builds the document for a finished session
func NewSurveyResponse(s *SurveySession, duration float64) *SurveyResponse {
	resp := &SurveyResponse{
		ID:           s.ID,
		Name:         s.Participant.Name,
		Email:        s.Participant.Email,
		Demographics: s.Participant.Demographics,
		Duration:     duration,
	}

	folders := NewKeySet()
	for path, value := range s.Answers {
		folder, face, ok := SplitAnswerPath(path)
		if !ok {
			continue
		}
		folders.Add(folder.Key())
		resp.Answers = append(resp.Answers, FaceRating{
			Path:   path,
			Folder: string(folder.Key()),
			Page:   folder.Page,
			Face:   face,
			Value:  value,
		})
	}
	sort.Slice(resp.Answers, func(i, j int) bool { return resp.Answers[i].Path < resp.Answers[j].Path })

	for _, k := range folders.Sorted() {
		resp.Folders = append(resp.Folders, string(k))
	}
	return resp
}

// AnswerMap returns the ratings as a path -> value map
func (r *SurveyResponse) AnswerMap() Answers {
	answers := make(Answers, len(r.Answers))
	for _, a := range r.Answers {
		answers[a.Path] = a.Value
	}
	return answers
}

// ResponseStats summarises how much content has been answered
type ResponseStats struct {
	Responses        int64          `json:"responses"`
	TotalFolders     int            `json:"totalFolders"`
	AnsweredFolders  int            `json:"answeredFolders"`
	RemainingFolders int            `json:"remainingFolders"`
	PageResponses    map[string]int `json:"pageResponses"`
}
