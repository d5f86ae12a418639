// Package reference holds the static MLB team, stadium, ballpark and pitcher tables.
package reference

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/early-innings/internal/models"
)

const (
	// NeutralBallparkFactor is used for stadiums without a configured factor
	NeutralBallparkFactor = 1.0
	// UnknownStadium is the stadium reported for teams missing from the tables
	UnknownStadium = "Unknown Stadium"
)

// Data is the raw input for New
type Data struct {
	Teams           []models.Team
	Pitchers        []models.Pitcher
	BallparkFactors map[string]float64
}

// Reference is an immutable, validated view over the static tables.
// It is safe for concurrent use.
type Reference struct {
	teams    []models.Team
	byName   map[string]models.Team
	byAbbr   map[string]models.Team
	pitchers map[string]models.Pitcher
	rosters  map[string][]string
	factors  map[string]float64
}

// Default returns the reference built from the compiled-in tables
func Default() *Reference {
	ref, err := New(Data{
		Teams:           defaultTeams,
		Pitchers:        defaultPitchers,
		BallparkFactors: defaultBallparkFactors,
	})
	if err != nil {
		panic(fmt.Sprintf("reference: built-in tables are invalid: %v", err))
	}
	return ref
}

// New validates data and builds a Reference. Pitchers appearing more than once
// keep the last entry. Roster order follows the input order.
func New(data Data) (*Reference, error) {
	validate := validator.New()

	ref := &Reference{
		teams:    make([]models.Team, 0, len(data.Teams)),
		byName:   make(map[string]models.Team, len(data.Teams)),
		byAbbr:   make(map[string]models.Team, len(data.Teams)),
		pitchers: make(map[string]models.Pitcher, len(data.Pitchers)),
		rosters:  make(map[string][]string),
		factors:  make(map[string]float64, len(data.BallparkFactors)),
	}

	for _, team := range data.Teams {
		if err := validate.Struct(team); err != nil {
			return nil, fmt.Errorf("%w: team %q: %v", models.ErrInvalidInput, team.Name, err)
		}
		if _, ok := ref.byName[team.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate team name %q", models.ErrInvalidInput, team.Name)
		}
		if _, ok := ref.byAbbr[team.Abbreviation]; ok {
			return nil, fmt.Errorf("%w: duplicate team abbreviation %q", models.ErrInvalidInput, team.Abbreviation)
		}
		ref.teams = append(ref.teams, team)
		ref.byName[team.Name] = team
		ref.byAbbr[team.Abbreviation] = team
	}

	for stadium, factor := range data.BallparkFactors {
		if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
			return nil, fmt.Errorf("%w: ballpark factor for %q must be positive, got %v", models.ErrInvalidInput, stadium, factor)
		}
		ref.factors[stadium] = factor
	}

	order := make([]string, 0, len(data.Pitchers))
	for _, p := range data.Pitchers {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: pitcher %q: %v", models.ErrInvalidInput, p.Name, err)
		}
		if p.ERA != nil && (math.IsNaN(*p.ERA) || math.IsInf(*p.ERA, 0)) {
			return nil, fmt.Errorf("%w: pitcher %q has a non-finite ERA", models.ErrInvalidInput, p.Name)
		}
		if _, ok := ref.byName[p.Team]; !ok {
			return nil, fmt.Errorf("%w: pitcher %q belongs to unknown team %q", models.ErrInvalidInput, p.Name, p.Team)
		}
		if _, seen := ref.pitchers[p.Name]; !seen {
			order = append(order, p.Name)
		}
		ref.pitchers[p.Name] = copyPitcher(p)
	}

	for _, name := range order {
		team := ref.pitchers[name].Team
		ref.rosters[team] = append(ref.rosters[team], name)
	}

	return ref, nil
}

// TeamNames returns the full names of every team in table order
func (r *Reference) TeamNames() []string {
	names := make([]string, len(r.teams))
	for i, team := range r.teams {
		names[i] = team.Name
	}
	return names
}

// Team looks up a team by exact full name
func (r *Reference) Team(name string) (models.Team, bool) {
	team, ok := r.byName[name]
	return team, ok
}

// TeamByAbbreviation looks up a team by abbreviation, case-insensitively
func (r *Reference) TeamByAbbreviation(abbr string) (models.Team, bool) {
	team, ok := r.byAbbr[strings.ToUpper(strings.TrimSpace(abbr))]
	return team, ok
}

// MatchTeam resolves a loosely written team name. An exact match wins; otherwise
// the first team whose name contains, or is contained in, the query is returned
// (so "Oakland Athletics" resolves to "Athletics").
func (r *Reference) MatchTeam(name string) (models.Team, bool) {
	if team, ok := r.byName[name]; ok {
		return team, true
	}
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return models.Team{}, false
	}
	for _, team := range r.teams {
		candidate := strings.ToLower(team.Name)
		if strings.Contains(query, candidate) || strings.Contains(candidate, query) {
			return team, true
		}
	}
	return models.Team{}, false
}

// StadiumFor returns the home stadium of a team, or UnknownStadium
func (r *Reference) StadiumFor(teamName string) string {
	if team, ok := r.byName[teamName]; ok {
		return team.Stadium
	}
	return UnknownStadium
}

// BallparkFactor returns the run-scoring multiplier of a stadium.
// Unknown stadiums are neutral.
func (r *Reference) BallparkFactor(stadium string) float64 {
	if factor, ok := r.factors[stadium]; ok {
		return factor
	}
	return NeutralBallparkFactor
}

// Roster returns the pitchers of a team in table order. Teams without
// pitchers yield an empty slice.
func (r *Reference) Roster(teamName string) []models.Pitcher {
	names := r.rosters[teamName]
	out := make([]models.Pitcher, 0, len(names))
	for _, name := range names {
		out = append(out, copyPitcher(r.pitchers[name]))
	}
	return out
}

// Pitcher looks up a pitcher by exact name
func (r *Reference) Pitcher(name string) (models.Pitcher, bool) {
	p, ok := r.pitchers[name]
	if !ok {
		return models.Pitcher{}, false
	}
	return copyPitcher(p), true
}

func copyPitcher(p models.Pitcher) models.Pitcher {
	if p.ERA != nil {
		p.ERA = models.Float64Ptr(*p.ERA)
	}
	return p
}
