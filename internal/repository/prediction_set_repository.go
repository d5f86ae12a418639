package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yourusername/early-innings/internal/database"
	"github.com/yourusername/early-innings/internal/models"
)

const errScanPrediction = "failed to scan prediction: %w"

// PostgresPredictionSetRepository implements PredictionSetRepository for PostgreSQL
type PostgresPredictionSetRepository struct {
	db *database.DB
}

// NewPostgresPredictionSetRepository creates a new prediction set repository
func NewPostgresPredictionSetRepository(db *database.DB) PredictionSetRepository {
	return &PostgresPredictionSetRepository{db: db}
}

func fixtureCount(set *models.PredictionSet) int {
	most := 0
	for _, preds := range set.Predictions {
		if len(preds) > most {
			most = len(preds)
		}
	}
	return most
}

// Save upserts the set for its date, replacing any earlier rows for that date
func (r *PostgresPredictionSetRepository) Save(ctx context.Context, set *models.PredictionSet) error {
	date, err := models.ParseDate(set.Date)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode prediction set: %w", err)
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO prediction_sets (date, generated_at, fixtures, payload)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (date) DO UPDATE
			SET generated_at = EXCLUDED.generated_at,
			    fixtures = EXCLUDED.fixtures,
			    payload = EXCLUDED.payload,
			    updated_at = NOW()
		`, date, set.GeneratedAt, fixtureCount(set), payload)
		if err != nil {
			return fmt.Errorf("failed to upsert prediction set: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM predictions WHERE date = $1`, date); err != nil {
			return fmt.Errorf("failed to clear archived predictions: %w", err)
		}

		batch := &pgx.Batch{}
		for _, t := range models.PredictionTypes {
			for _, p := range set.ForType(t) {
				batch.Queue(`
					INSERT INTO predictions (date, prediction_type, home_team, away_team, probability, rating, data_source)
					VALUES ($1, $2, $3, $4, $5, $6, $7)
				`, date, string(t), p.HomeTeam, p.AwayTeam, p.Probability, string(p.Rating), p.DataSource)
			}
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert predictions: %w", err)
		}
		return nil
	})
}

// GetByDate returns the archived set for date, or models.ErrNotFound
func (r *PostgresPredictionSetRepository) GetByDate(ctx context.Context, date time.Time) (*models.PredictionSet, error) {
	var payload []byte
	err := r.db.GetPool().QueryRow(ctx,
		`SELECT payload FROM prediction_sets WHERE date = $1`, dateOnly(date),
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction set: %w", err)
	}

	set := &models.PredictionSet{}
	if err := json.Unmarshal(payload, set); err != nil {
		return nil, fmt.Errorf("failed to decode prediction set: %w", err)
	}
	return set, nil
}

// ListDates returns archived dates, newest first
func (r *PostgresPredictionSetRepository) ListDates(ctx context.Context, limit int) ([]time.Time, error) {
	rows, err := r.db.GetPool().Query(ctx,
		`SELECT date FROM prediction_sets ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetByRating returns the archived predictions of one rating on date, best first
func (r *PostgresPredictionSetRepository) GetByRating(ctx context.Context, date time.Time, rating models.Rating) ([]ArchivedPrediction, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT date, prediction_type, home_team, away_team, probability::text, rating, data_source
		FROM predictions
		WHERE date = $1 AND rating = $2
		ORDER BY probability DESC, home_team ASC
	`, dateOnly(date), string(rating))
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var out []ArchivedPrediction
	for rows.Next() {
		var (
			p           ArchivedPrediction
			typ, rate   string
			probability string
		)
		if err := rows.Scan(&p.Date, &typ, &p.HomeTeam, &p.AwayTeam, &probability, &rate, &p.DataSource); err != nil {
			return nil, fmt.Errorf(errScanPrediction, err)
		}
		d, err := decimal.NewFromString(probability)
		if err != nil {
			return nil, fmt.Errorf(errScanPrediction, err)
		}
		p.Probability = d.InexactFloat64()
		p.Type = models.PredictionType(typ)
		p.Rating = models.Rating(rate)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Ping verifies the archive is reachable
func (r *PostgresPredictionSetRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
