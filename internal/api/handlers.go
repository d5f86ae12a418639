package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/repository"
	"github.com/yourusername/early-innings/internal/service"
)

// PredictionService is what the handlers need from the orchestrator
type PredictionService interface {
	PredictionsFor(ctx context.Context, date time.Time, t models.PredictionType) ([]models.Prediction, error)
	Refresh(ctx context.Context) (service.RefreshResult, error)
	History(ctx context.Context, date time.Time) (*models.PredictionSet, error)
	HistoryByRating(ctx context.Context, date time.Time, rating models.Rating) ([]repository.ArchivedPrediction, error)
}

// RefreshResponse is the body of /api/refresh
type RefreshResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Cleared []string `json:"cleared,omitempty"`
}

// Handler wires HTTP routes to the prediction service.
type Handler struct {
	svc        PredictionService
	logger     *logrus.Entry
	audit      *logger.AuditLogger
	strictType bool
	location   *time.Location
	now        func() time.Time
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithStrictPredictionType rejects unknown prediction types instead of
// falling back to the default type
func WithStrictPredictionType(strict bool) HandlerOption {
	return func(h *Handler) {
		h.strictType = strict
	}
}

// WithLocation sets the timezone that decides what "today" is
func WithLocation(loc *time.Location) HandlerOption {
	return func(h *Handler) {
		if loc != nil {
			h.location = loc
		}
	}
}

// WithNow replaces the clock, mainly for tests
func WithNow(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc PredictionService, log *logrus.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:      svc,
		logger:   log.WithField("component", "api"),
		audit:    logger.NewAuditLogger(log),
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) today() time.Time {
	local := h.now().In(h.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// date reads the date query parameter, defaulting to today
func (h *Handler) date(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.today(), nil
	}
	return models.ParseDate(raw)
}

// predictionType reads the type query parameter. Missing means the default
// type; unknown values fall back to it unless the handler is strict.
func (h *Handler) predictionType(r *http.Request) (models.PredictionType, error) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		return models.Under1RunFirstInning, nil
	}
	t, err := models.ParsePredictionType(raw)
	if err == nil {
		return t, nil
	}
	if h.strictType {
		return "", err
	}
	loggerFromContext(r.Context(), h.logger).WithField("type", raw).Debug("Unknown prediction type, using default")
	return models.Under1RunFirstInning, nil
}

// Predictions handles GET /api/predictions?type=&date=
func (h *Handler) Predictions(w http.ResponseWriter, r *http.Request) {
	log := loggerFromContext(r.Context(), h.logger)

	date, err := h.date(r)
	if err != nil {
		h.fail(w, r, err, log)
		return
	}
	t, err := h.predictionType(r)
	if err != nil {
		h.fail(w, r, err, log)
		return
	}

	preds, err := h.svc.PredictionsFor(r.Context(), date, t)
	if err != nil {
		h.fail(w, r, err, log)
		return
	}
	writeJSON(w, http.StatusOK, preds, log)
}

// Refresh handles GET /api/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := loggerFromContext(r.Context(), h.logger)
	h.audit.LogRefreshRequested(RequestIDFromContext(r.Context()), r.RemoteAddr, "api")

	result, err := h.svc.Refresh(r.Context())
	if err != nil {
		log.WithError(err).Error("Error refreshing data")
		writeJSON(w, http.StatusInternalServerError, RefreshResponse{
			Status:  "error",
			Message: err.Error(),
			Cleared: result.Cleared,
		}, log)
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{
		Status:  "success",
		Message: "Data refreshed successfully",
		Cleared: result.Cleared,
	}, log)
}

// History handles GET /api/history?date=&rating= from the archive. With a
// rating it returns the matching archived rows instead of the whole set.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := loggerFromContext(r.Context(), h.logger)

	date, err := h.date(r)
	if err != nil {
		h.fail(w, r, err, log)
		return
	}

	if raw := r.URL.Query().Get("rating"); raw != "" {
		rating, err := models.ParseRating(raw)
		if err != nil {
			h.fail(w, r, err, log)
			return
		}
		preds, err := h.svc.HistoryByRating(r.Context(), date, rating)
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "no archived predictions for "+models.FormatDate(date), log)
			return
		}
		if err != nil {
			h.fail(w, r, err, log)
			return
		}
		writeJSON(w, http.StatusOK, preds, log)
		return
	}

	set, err := h.svc.History(r.Context(), date)
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no archived predictions for "+models.FormatDate(date), log)
		return
	}
	if err != nil {
		h.fail(w, r, err, log)
		return
	}
	writeJSON(w, http.StatusOK, set, log)
}

// fail reports an error as a 500 with an {"error": msg} body. Invalid input
// carries its own message; anything else is logged and reported generically.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, log *logrus.Entry) {
	if errors.Is(err, models.ErrInvalidInput) {
		log.WithError(err).Warn("Rejected request")
		writeError(w, r, http.StatusInternalServerError, err.Error(), log)
		return
	}
	log.WithError(err).Error("Error getting predictions")
	writeError(w, r, http.StatusInternalServerError, "failed to compute predictions", log)
}
