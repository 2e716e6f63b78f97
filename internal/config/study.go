package config

import (
	"errors"
	"fmt"
	"os"

	"engagesurvey/internal/model"

	"gopkg.in/yaml.v3"
)

// Sampling strategies
const (
	SamplingUniform  = "uniform"
	SamplingBalanced = "balanced"
)

// StudyConfig describes what participants are shown and how it is drawn
type StudyConfig struct {
	// BatchSize is the number of folders sampled per session
	BatchSize int `yaml:"batch_size" json:"batchSize"`

	// Sampling is "uniform" or "balanced" (least-responded pages first)
	Sampling string `yaml:"sampling" json:"sampling"`

	FacePrefix      string   `yaml:"face_prefix" json:"-"`
	ImageExtensions []string `yaml:"image_extensions" json:"-"`
	ContextImage    string   `yaml:"context_image" json:"-"`

	// ExcludedPages are page folders that are never sampled
	ExcludedPages []string `yaml:"excluded_pages" json:"-"`

	Ratings model.RatingScale `yaml:"ratings" json:"ratings"`

	// Guidance is the instruction text shown before the first face
	Guidance string `yaml:"guidance" json:"guidance"`
}

const defaultGuidance = "For each face, rate the student's level of engagement based on visual cues, " +
	"from 1 (no engagement) to 10 (maximum engagement). If you cannot determine the engagement level " +
	"for a face, select \"No context image\". Your responses are anonymous and will only be used for research purposes."

// DefaultStudy returns the configuration the study ran with
func DefaultStudy() *StudyConfig {
	return &StudyConfig{
		BatchSize:       2,
		Sampling:        SamplingUniform,
		FacePrefix:      "face",
		ImageExtensions: []string{".png", ".jpg", ".jpeg"},
		ContextImage:    "0.jpg",
		Ratings:         model.DefaultRatingScale(),
		Guidance:        defaultGuidance,
	}
}

// LoadStudy reads a YAML study file over the defaults. A missing file yields the defaults.
func LoadStudy(filename string) (*StudyConfig, error) {
	study := DefaultStudy()

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return study, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read study file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, study); err != nil {
		return nil, fmt.Errorf("parse study file %s: %w", filename, err)
	}

	if err := study.Validate(); err != nil {
		return nil, fmt.Errorf("invalid study file %s: %w", filename, err)
	}
	return study, nil
}

// Validate checks the configuration is usable
func (s *StudyConfig) Validate() error {
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0, got %d", s.BatchSize)
	}
	if s.Sampling != SamplingUniform && s.Sampling != SamplingBalanced {
		return fmt.Errorf("sampling must be %q or %q, got %q", SamplingUniform, SamplingBalanced, s.Sampling)
	}
	if s.FacePrefix == "" {
		return errors.New("face_prefix must not be empty")
	}
	if len(s.ImageExtensions) == 0 {
		return errors.New("image_extensions must not be empty")
	}
	if s.ContextImage == "" {
		return errors.New("context_image must not be empty")
	}
	if len(s.Ratings) == 0 {
		return errors.New("ratings must not be empty")
	}

	seen := make(map[string]bool, len(s.Ratings))
	for i, r := range s.Ratings {
		if r.Value == "" {
			return fmt.Errorf("rating %d has an empty value", i)
		}
		if seen[r.Value] {
			return fmt.Errorf("rating %q is listed twice", r.Value)
		}
		seen[r.Value] = true
	}
	return nil
}
