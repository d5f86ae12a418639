// Package scoring turns a fixture into a probability, a rating and a factor
// breakdown for each prediction type.
package scoring

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/reference"
	"github.com/yourusername/early-innings/internal/seeded"
)

const (
	// DefaultERA stands in for an unknown ERA in the arithmetic only
	DefaultERA = 4.50

	MinBaseProbability = 0.4
	MaxBaseProbability = 0.7

	// JitterSpread is the width of the deterministic adjustment around the base
	JitterSpread = 0.1

	BetThreshold  = 60.0
	LeanThreshold = 52.0
)

// validator caches struct metadata and is safe for concurrent use
var validate = validator.New()

// Scorer computes predictions against the ballpark factors of a reference table
type Scorer struct {
	ref *reference.Reference
}

// NewScorer creates a scorer
func NewScorer(ref *reference.Reference) *Scorer {
	return &Scorer{ref: ref}
}

// Score produces the prediction of one type for one fixture
func (s *Scorer) Score(fixture models.GameFixture, t models.PredictionType) (models.Prediction, error) {
	probability, err := s.probability(fixture, t)
	if err != nil {
		return models.Prediction{}, err
	}

	pred := models.Prediction{
		GameFixture: fixture,
		Type:        t,
		Probability: probability,
		Rating:      RatingFor(probability),
		Factors:     Factors(fixture),
		DataSource:  fixture.HomeERASource.Label(),
	}
	if err := checkPrediction(pred); err != nil {
		return models.Prediction{}, err
	}

	metrics.RecordPrediction(string(t), string(pred.Rating))
	return pred, nil
}

// checkPrediction enforces the range and rating tags of a scored prediction
func checkPrediction(pred models.Prediction) error {
	if err := validate.Struct(pred); err != nil {
		return fmt.Errorf("invalid %s prediction for %s at %s: %w", pred.Type, pred.AwayTeam, pred.HomeTeam, err)
	}
	return nil
}

func (s *Scorer) probability(fixture models.GameFixture, t models.PredictionType) (float64, error) {
	raw, err := s.rawProbability(fixture, t)
	if err != nil {
		return 0, err
	}
	return roundPercent(raw), nil
}

// rawProbability is the jittered probability in [0,1] before rounding
func (s *Scorer) rawProbability(fixture models.GameFixture, t models.PredictionType) (float64, error) {
	avg := AverageERA(fixture.HomeERAValue, fixture.AwayERAValue)
	base, err := BaseProbability(avg, s.ref.BallparkFactor(fixture.Stadium), t)
	if err != nil {
		return 0, err
	}
	return clamp(base+Jitter(fixture.HomeTeam, fixture.AwayTeam, t), 0, 1), nil
}

// AverageERA is the mean of both starters, with DefaultERA for unknown values
func AverageERA(home, away *float64) float64 {
	h, a := DefaultERA, DefaultERA
	if home != nil {
		h = *home
	}
	if away != nil {
		a = *away
	}
	return (h + a) / 2
}

// BaseProbability applies the per-type formula and clamps the result to
// [MinBaseProbability, MaxBaseProbability]
func BaseProbability(avgERA, ballparkFactor float64, t models.PredictionType) (float64, error) {
	// explicit conversions keep each product rounded before the sum
	eraTerm := float64((avgERA - 4.0) * 0.05)
	parkTerm := float64((ballparkFactor - 1.0) * 0.2)

	var base float64
	switch t {
	case models.Under1RunFirstInning:
		base = 0.5 - eraTerm - parkTerm
	case models.Over25RunsFirstThree:
		base = 0.5 + eraTerm + parkTerm
	case models.Over35RunsFirstThree:
		base = 0.4 + eraTerm + parkTerm
	default:
		return 0, fmt.Errorf("%w %q", models.ErrInvalidPredictionType, string(t))
	}
	return clamp(base, MinBaseProbability, MaxBaseProbability), nil
}

// Jitter is the reproducible adjustment for a matchup and type, in
// [-JitterSpread/2, JitterSpread/2)
func Jitter(homeTeam, awayTeam string, t models.PredictionType) float64 {
	u := seeded.ForParts(homeTeam, awayTeam, string(t)).Float64()
	return float64((u - 0.5) * JitterSpread)
}

// RatingFor maps a percent probability to a rating
func RatingFor(probability float64) models.Rating {
	switch {
	case probability >= BetThreshold:
		return models.RatingBet
	case probability >= LeanThreshold:
		return models.RatingLean
	default:
		return models.RatingPass
	}
}

// roundPercent scales to percent and rounds half away from zero on the
// shortest decimal form of p, so 0.5005 becomes 50.1
func roundPercent(p float64) float64 {
	rounded, _ := decimal.NewFromFloat(p).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return rounded
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
