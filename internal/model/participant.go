package model

// Demographics are the optional profile questions asked before a survey
type Demographics struct {
	Gender     string `json:"gender,omitempty" bson:"gender,omitempty" validate:"max=64"`
	AgeRange   string `json:"ageRange,omitempty" bson:"ageRange,omitempty" validate:"max=64"`
	Education  string `json:"education,omitempty" bson:"education,omitempty" validate:"max=128"`
	Profession string `json:"profession,omitempty" bson:"profession,omitempty" validate:"max=128"`
}

// Participant is the person answering a survey. Every field is optional.
type Participant struct {
	Name         string       `json:"name" bson:"name" validate:"max=200"`
	Email        string       `json:"email" bson:"email" validate:"omitempty,email,max=254"`
	Demographics Demographics `json:"demographics" bson:"demographics"`
}

// StartSessionResponse is returned when a participant begins a survey
type StartSessionResponse struct {
	Token   string       `json:"token"`
	Session *SessionView `json:"session"`
}
