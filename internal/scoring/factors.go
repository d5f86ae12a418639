package scoring

import (
	"fmt"

	"github.com/yourusername/early-innings/internal/models"
)

type factorSpec struct {
	name        string
	weight      float64
	description string
}

// Only pitcher performance feeds the probability today. The remaining factors
// are reported with their intended weights and flagged as placeholders.
var placeholderFactors = []factorSpec{
	{"Bullpen Performance", 0.15, "Relief pitcher effectiveness and recent workload"},
	{"Batter vs. Pitcher Matchups", 0.15, "Historical batter performance against the starters"},
	{"Ballpark Factors", 0.10, "Impact of ballpark dimensions and conditions on scoring"},
	{"Team Offense", 0.10, "Early-inning run production of both lineups"},
	{"Team Defense", 0.05, "Fielding efficiency behind the starters"},
	{"Weather Conditions", 0.05, "Temperature and wind at first pitch"},
	{"Umpire Impact", 0.05, "Home plate umpire strike zone tendencies"},
	{"Travel Fatigue", 0.05, "Travel and rest days for both clubs"},
	{"Momentum", 0.05, "Recent form of both clubs"},
}

// PitcherPerformanceWeight is the share of the only factor that is computed
const PitcherPerformanceWeight = 0.25

// Factors returns the breakdown for a fixture. Weights are fractions summing to 1.
func Factors(fixture models.GameFixture) []models.Factor {
	factors := make([]models.Factor, 0, len(placeholderFactors)+1)
	factors = append(factors, models.Factor{
		Name:   "Pitcher Performance",
		Weight: PitcherPerformanceWeight,
		Description: fmt.Sprintf("Home: %s (ERA: %s), Away: %s (ERA: %s)",
			fixture.HomePitcher, fixture.HomeERA, fixture.AwayPitcher, fixture.AwayERA),
	})
	for _, spec := range placeholderFactors {
		factors = append(factors, models.Factor{
			Name:        spec.name,
			Weight:      spec.weight,
			Description: spec.description,
			Placeholder: true,
		})
	}
	return factors
}
