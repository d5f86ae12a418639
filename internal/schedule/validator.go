package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/early-innings/internal/datasource"
)

// status prefixes that mean the game will not be played on the requested
// date; the provider appends reasons, as in "Suspended: Rain"
var unplayableStatuses = []string{"postponed", "cancelled", "canceled", "suspended"}

func unplayable(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	for _, prefix := range unplayableStatuses {
		if strings.HasPrefix(status, prefix) {
			return true
		}
	}
	return false
}

// ValidateScheduledGame returns the problems that keep a provider game out
// of the slate for date. An empty result means the game is usable.
func ValidateScheduledGame(game datasource.ScheduledGame, date time.Time, loc *time.Location) []string {
	var problems []string

	home := strings.TrimSpace(game.HomeTeam)
	away := strings.TrimSpace(game.AwayTeam)
	if home == "" {
		problems = append(problems, "home team is required")
	}
	if away == "" {
		problems = append(problems, "away team is required")
	}
	if home != "" && strings.EqualFold(home, away) {
		problems = append(problems, fmt.Sprintf("team %q cannot play itself", home))
	}

	if unplayable(game.Status) {
		problems = append(problems, fmt.Sprintf("game status is %s", game.Status))
	}

	if !game.StartTime.IsZero() {
		local := game.StartTime.In(loc)
		if local.Year() != date.Year() || local.YearDay() != date.YearDay() {
			problems = append(problems, fmt.Sprintf("game starts on %s, not %s",
				local.Format("2006-01-02"), date.Format("2006-01-02")))
		}
	}

	if game.HomeStarter != "" && game.HomeStarter == game.AwayStarter {
		problems = append(problems, "both clubs list the same probable starter")
	}

	return problems
}
