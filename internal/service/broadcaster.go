package service

import "time"

// MsgSurveySubmitted is sent to admin dashboards after each submission
const MsgSurveySubmitted = "survey_submitted"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToAdmins(msgType string, payload interface{})
}

// SubmissionEvent is the payload of MsgSurveySubmitted
type SubmissionEvent struct {
	ResponseID string    `json:"responseId"`
	Folders    []string  `json:"folders"`
	Answers    int       `json:"answers"`
	Duration   float64   `json:"duration"`
	At         time.Time `json:"at"`
}
