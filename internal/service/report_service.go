package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"engagesurvey/internal/content"
	"engagesurvey/internal/model"
)

// ExportHeader is the dataset CSV header, one row per rated face
var ExportHeader = []string{
	"dataset",
	"datetime",
	"face",
	"face_bbox_x1",
	"face_bbox_y1",
	"face_bbox_x2",
	"face_bbox_y2",
	"engagement",
	"participant_name",
	"participant_email",
	"survey_timestamp",
}

// ReportService builds admin statistics and exports
type ReportService struct {
	responses *ResponseService
	content   content.Repository
}

// NewReportService creates a new report service
func NewReportService(responses *ResponseService, contentRepo content.Repository) *ReportService {
	return &ReportService{
		responses: responses,
		content:   contentRepo,
	}
}

// Stats reports how much of the content pool has been answered
func (s *ReportService) Stats(ctx context.Context) (*model.ResponseStats, error) {
	folders, err := s.content.ListContent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}

	answered, err := s.responses.AnsweredKeys(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.responses.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	pageCounts, err := s.responses.PageCounts(ctx)
	if err != nil {
		return nil, err
	}

	remaining := len(unanswered(folders, answered))
	return &model.ResponseStats{
		Responses:        total,
		TotalFolders:     len(folders),
		AnsweredFolders:  len(folders) - remaining,
		RemainingFolders: remaining,
		PageResponses:    pageCounts,
	}, nil
}

// ExportCSV writes every stored rating as a dataset row
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	responses, err := s.responses.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return WriteDatasetCSV(w, responses)
}

// WriteDatasetCSV renders responses in the dataset format
func WriteDatasetCSV(w io.Writer, responses []*model.SurveyResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}

	for _, r := range responses {
		name := orDefault(r.Name, "Anonymous")
		email := orDefault(r.Email, "Anonymous")
		submitted := "N/A"
		if !r.Timestamp.IsZero() {
			submitted = r.Timestamp.UTC().Format(time.RFC3339)
		}

		for _, a := range r.Answers {
			folder, _, ok := model.SplitAnswerPath(a.Path)
			if !ok {
				folder = model.Folder{Page: a.Page}
			}
			face := model.ParseFaceFilename(a.Face)
			row := []string{
				orDefault(folder.Page, "N/A"),
				orDefault(folder.Sub, "N/A"),
				orDefault(face.Face, "N/A"),
				orDefault(face.X1, "N/A"),
				orDefault(face.Y1, "N/A"),
				orDefault(face.X2, "N/A"),
				orDefault(face.Y2, "N/A"),
				orDefault(a.Value, "N/A"),
				name,
				email,
				submitted,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
