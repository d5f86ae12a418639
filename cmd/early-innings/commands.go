package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/early-innings/internal/events"
	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/service"
)

var (
	predictDate   string
	predictType   string
	historyDate   string
	historyRating string
	historyList   bool
	historyLimit  int
)

func init() {
	predictCmd.Flags().StringVarP(&predictDate, "date", "d", "", "Date in YYYY-MM-DD format (default today)")
	predictCmd.Flags().StringVarP(&predictType, "type", "t", string(models.Under1RunFirstInning), "Prediction type")
	historyCmd.Flags().StringVarP(&historyDate, "date", "d", "", "Date in YYYY-MM-DD format (default today)")
	historyCmd.Flags().StringVarP(&historyRating, "rating", "r", "", "Only print archived predictions with this rating (Bet, Lean or Pass)")
	historyCmd.Flags().BoolVarP(&historyList, "list", "l", false, "List archived dates instead of printing a set")
	historyCmd.Flags().IntVar(&historyLimit, "limit", service.DefaultHistoryLimit, "Maximum number of dates to list")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print the predictions of one type for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := models.ParsePredictionType(predictType)
		if err != nil {
			return err
		}
		return withApplication(cmd.Context(), func(ctx context.Context, app *application) error {
			date, err := dateOrToday(predictDate, app)
			if err != nil {
				return err
			}
			preds, err := app.service.PredictionsFor(ctx, date, t)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), preds)
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the prediction and reference caches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd.Context(), func(ctx context.Context, app *application) error {
			result, err := app.service.Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared: %v\n", result.Cleared)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print archived predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Archive.Enabled {
			return fmt.Errorf("archive is disabled; set archive.enabled and archive.dsn")
		}
		return withApplication(cmd.Context(), func(ctx context.Context, app *application) error {
			if historyList {
				dates, err := app.service.ArchivedDates(ctx, historyLimit)
				if err != nil {
					return err
				}
				days := make([]string, 0, len(dates))
				for _, d := range dates {
					days = append(days, models.FormatDate(d))
				}
				return printJSON(cmd.OutOrStdout(), days)
			}

			date, err := dateOrToday(historyDate, app)
			if err != nil {
				return err
			}
			if historyRating != "" {
				rating, err := models.ParseRating(historyRating)
				if err != nil {
					return err
				}
				preds, err := app.service.HistoryByRating(ctx, date, rating)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), preds)
			}

			set, err := app.service.History(ctx, date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), set)
		})
	},
}

func withApplication(parent context.Context, fn func(ctx context.Context, app *application) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
	defer cancel()

	app, err := newApplication(ctx, cfg, appLog, events.Nop{})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func dateOrToday(raw string, app *application) (time.Time, error) {
	if raw == "" {
		return app.today(), nil
	}
	return models.ParseDate(raw)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
