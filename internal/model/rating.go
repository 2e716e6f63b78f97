package model

import "strconv"

// NoContextImage is the rating used when engagement cannot be judged
const NoContextImage = "No context image"

// RatingOption is one selectable engagement rating
type RatingOption struct {
	Value   string `json:"value" yaml:"value"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// RatingScale is the ordered, fixed set of labels a face can be rated with
type RatingScale []RatingOption

// DefaultRatingScale returns "1".."10" plus NoContextImage
func DefaultRatingScale() RatingScale {
	scale := make(RatingScale, 0, 11)
	for i := 1; i <= 10; i++ {
		opt := RatingOption{Value: strconv.Itoa(i)}
		switch i {
		case 1:
			opt.Caption = "No engagement"
		case 10:
			opt.Caption = "Maximum engagement"
		}
		scale = append(scale, opt)
	}
	return append(scale, RatingOption{Value: NoContextImage})
}

// Contains reports whether value is one of the scale's labels
func (s RatingScale) Contains(value string) bool {
	for _, opt := range s {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values returns the labels in display order
func (s RatingScale) Values() []string {
	values := make([]string, len(s))
	for i, opt := range s {
		values[i] = opt.Value
	}
	return values
}
