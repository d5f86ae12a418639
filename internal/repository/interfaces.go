package repository

import (
	"context"
	"time"

	"github.com/yourusername/early-innings/internal/models"
)

// ArchivedPrediction is one stored prediction row
type ArchivedPrediction struct {
	Date        time.Time             `json:"date"`
	Type        models.PredictionType `json:"type"`
	HomeTeam    string                `json:"home_team"`
	AwayTeam    string                `json:"away_team"`
	Probability float64               `json:"probability"`
	Rating      models.Rating         `json:"rating"`
	DataSource  string                `json:"data_source"`
}

// PredictionSetRepository defines the interface for the prediction archive
type PredictionSetRepository interface {
	Save(ctx context.Context, set *models.PredictionSet) error
	GetByDate(ctx context.Context, date time.Time) (*models.PredictionSet, error)
	ListDates(ctx context.Context, limit int) ([]time.Time, error)
	GetByRating(ctx context.Context, date time.Time, rating models.Rating) ([]ArchivedPrediction, error)
	Ping(ctx context.Context) error
}
