package repository

import (
	"fmt"

	"github.com/yourusername/early-innings/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	PredictionSets PredictionSetRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		PredictionSets: NewPostgresPredictionSetRepository(db),
	}, nil
}
