package models

import (
	"fmt"
	"strings"
	"time"
)

// PredictionType is one of the closed set of early-innings markets
type PredictionType string

const (
	Under1RunFirstInning PredictionType = "under_1_run_1st"
	Over25RunsFirstThree PredictionType = "over_2.5_runs_3"
	Over35RunsFirstThree PredictionType = "over_3.5_runs_3"
)

// PredictionTypes lists every supported type in display order
var PredictionTypes = []PredictionType{
	Under1RunFirstInning,
	Over25RunsFirstThree,
	Over35RunsFirstThree,
}

// Valid reports whether t is a member of the closed set
func (t PredictionType) Valid() bool {
	switch t {
	case Under1RunFirstInning, Over25RunsFirstThree, Over35RunsFirstThree:
		return true
	default:
		return false
	}
}

// ParsePredictionType validates a raw tag
func ParsePredictionType(raw string) (PredictionType, error) {
	t := PredictionType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidPredictionType, raw)
	}
	return t, nil
}

// Rating is the qualitative call derived from a probability
type Rating string

const (
	RatingBet  Rating = "Bet"
	RatingLean Rating = "Lean"
	RatingPass Rating = "Pass"
)

// ParseRating accepts a rating in any letter case
func ParseRating(raw string) (Rating, error) {
	for _, r := range []Rating{RatingBet, RatingLean, RatingPass} {
		if strings.EqualFold(raw, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidRating, raw)
}

// Factor is one named contribution in a prediction's breakdown
type Factor struct {
	Name        string  `json:"name" validate:"required"`
	Weight      float64 `json:"weight" validate:"gte=0,lte=1"`
	Description string  `json:"description"`
	Placeholder bool    `json:"placeholder"`
}

// Prediction is a scored fixture for a single prediction type
type Prediction struct {
	GameFixture
	Type        PredictionType `json:"type" validate:"required"`
	Probability float64        `json:"probability" validate:"gte=0,lte=100"`
	Rating      Rating         `json:"rating" validate:"oneof=Bet Lean Pass"`
	Factors     []Factor       `json:"factors" validate:"dive"`
	DataSource  string         `json:"data_source"`
}

// PredictionSet holds every prediction type computed for one date
type PredictionSet struct {
	Date        string                          `json:"date"`
	GeneratedAt time.Time                       `json:"generated_at"`
	Predictions map[PredictionType][]Prediction `json:"predictions"`
}

// ForType returns the slice for t, never nil
func (s *PredictionSet) ForType(t PredictionType) []Prediction {
	if s == nil || s.Predictions == nil {
		return []Prediction{}
	}
	if preds, ok := s.Predictions[t]; ok && preds != nil {
		return preds
	}
	return []Prediction{}
}
