// Package schedule produces the day's fixtures, from the live schedule when
// available and otherwise from a seeded generator over the reference tables.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/early-innings/internal/models"
	"github.com/yourusername/early-innings/internal/reference"
	"github.com/yourusername/early-innings/internal/seeded"
)

var (
	gameHours   = []int{12, 1, 4, 6, 7, 8, 10, 11}
	gameMinutes = []int{0, 5, 10, 35, 40}
)

// GameCount returns how many fixtures are generated on a weekday
func GameCount(day time.Weekday) int {
	switch day {
	case time.Friday, time.Saturday:
		return 15
	case time.Sunday:
		return 14
	default:
		return 10
	}
}

// Generator builds a reproducible slate for a date. The same date always
// yields the same matchups, times and starters.
type Generator struct {
	ref  *reference.Reference
	eras *ERALookup
}

// NewGenerator creates a generator
func NewGenerator(ref *reference.Reference, eras *ERALookup) *Generator {
	return &Generator{ref: ref, eras: eras}
}

// Generate returns the fixtures for date
func (g *Generator) Generate(ctx context.Context, date time.Time) []models.GameFixture {
	day := models.FormatDate(date)
	rng := seeded.Rand(day)

	teams := g.ref.TeamNames()
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	count := GameCount(date.Weekday())
	fixtures := make([]models.GameFixture, 0, count)
	for i := 0; i < count && 2*i+1 < len(teams); i++ {
		home, away := teams[2*i], teams[2*i+1]

		hour := gameHours[rng.IntN(len(gameHours))]
		minute := gameMinutes[rng.IntN(len(gameMinutes))]
		homePitcher := g.pickStarter(rng.IntN, home)
		awayPitcher := g.pickStarter(rng.IntN, away)

		fixture := models.GameFixture{
			Date:        day,
			HomeTeam:    home,
			AwayTeam:    away,
			Stadium:     g.ref.StadiumFor(home),
			Time:        formatGameTime(hour, minute),
			HomePitcher: homePitcher,
			AwayPitcher: awayPitcher,
			Source:      models.FixtureSourceGenerated,
		}
		fillERAs(ctx, g.eras, &fixture, date.Year())
		fixtures = append(fixtures, fixture)
	}
	return fixtures
}

func (g *Generator) pickStarter(intN func(int) int, team string) string {
	roster := g.ref.Roster(team)
	if len(roster) == 0 {
		return models.TBD
	}
	return roster[intN(len(roster))].Name
}

// formatGameTime renders a generated slot. Hour 12 is labelled AM, every
// other slot PM.
func formatGameTime(hour, minute int) string {
	suffix := "PM"
	if hour == 12 {
		suffix = "AM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, suffix)
}

func fillERAs(ctx context.Context, eras *ERALookup, fixture *models.GameFixture, season int) {
	home := ERAResult{Provenance: models.ProvenanceNotFound}
	away := home
	if eras != nil {
		home = eras.Lookup(ctx, fixture.HomeTeam, fixture.HomePitcher, season)
		away = eras.Lookup(ctx, fixture.AwayTeam, fixture.AwayPitcher, season)
	}

	fixture.HomeERAValue = home.Value
	fixture.HomeERA = models.FormatERA(home.Value)
	fixture.HomeERASource = home.Provenance
	fixture.AwayERAValue = away.Value
	fixture.AwayERA = models.FormatERA(away.Value)
	fixture.AwayERASource = away.Provenance
}
