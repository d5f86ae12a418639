package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/early-innings/internal/models"
)

// StatsProvider defines the interface for fetching baseball data from an external provider
type StatsProvider interface {
	// LookupPitcherERA returns the season ERA of the named pitcher
	LookupPitcherERA(ctx context.Context, pitcherName string, season int) (float64, error)

	// FetchSchedule returns the games scheduled on date
	FetchSchedule(ctx context.Context, date time.Time) ([]ScheduledGame, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// ScheduledGame is one game from the provider's schedule
type ScheduledGame struct {
	GamePK      int64     `json:"game_pk"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Venue       string    `json:"venue"`
	StartTime   time.Time `json:"start_time"` // zero when the provider has no start time
	Status      string    `json:"status"`       // detailed state such as "Scheduled" or "Suspended: Rain"
	HomeStarter string    `json:"home_starter"` // empty when no probable pitcher is announced
	AwayStarter string    `json:"away_starter"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error and marks every data source failure
// as models.ErrUpstreamUnavailable
func (e DataSourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{models.ErrUpstreamUnavailable, e.Err}
	}
	return []error{models.ErrUpstreamUnavailable}
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeDisabled          = "disabled"
	ErrCodeCircuitOpen       = "circuit_open"
)

// ErrCircuitOpen is returned while the HTTP client is refusing requests
var ErrCircuitOpen = errors.New("circuit breaker open")

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is a data source error for a missing subject
func IsNotFound(err error) bool {
	var dsErr DataSourceError
	return errors.As(err, &dsErr) && dsErr.Code == ErrCodeNotFound
}

// ErrorCode returns the data source error code of err, or "unknown"
func ErrorCode(err error) string {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return "unknown"
}
