package models

import "strconv"

// Provenance records where an ERA value came from
type Provenance string

const (
	ProvenanceOfficial Provenance = "official"
	ProvenanceFallback Provenance = "fallback"
	ProvenanceNotFound Provenance = "not-found"
)

// Label returns the human-readable data source string shown alongside predictions
func (p Provenance) Label() string {
	switch p {
	case ProvenanceOfficial:
		return "MLB Stats API (Official)"
	case ProvenanceFallback:
		return "MLB Stats API (Fallback)"
	default:
		return string(ProvenanceNotFound)
	}
}

// FixtureSource tells whether a slate came from the live schedule or the seeded generator
type FixtureSource string

const (
	FixtureSourceGenerated FixtureSource = "generated"
	FixtureSourceLive      FixtureSource = "live"
)

const (
	// TBD is the pitcher name used when no probable starter is known
	TBD = "TBD"
	// NotAvailable is the display ERA used when the value is unknown
	NotAvailable = "N/A"
)

// GameFixture is one scheduled game with its probable starters.
// Identity is (Date, HomeTeam, AwayTeam).
type GameFixture struct {
	Date          string        `json:"date"`
	HomeTeam      string        `json:"home_team"`
	AwayTeam      string        `json:"away_team"`
	Stadium       string        `json:"stadium"`
	Time          string        `json:"time"`
	HomePitcher   string        `json:"home_pitcher"`
	AwayPitcher   string        `json:"away_pitcher"`
	HomeERA       string        `json:"home_era"`
	AwayERA       string        `json:"away_era"`
	HomeERAValue  *float64      `json:"home_era_value"`
	AwayERAValue  *float64      `json:"away_era_value"`
	HomeERASource Provenance    `json:"home_era_source"`
	AwayERASource Provenance    `json:"away_era_source"`
	Source        FixtureSource `json:"source"`
}

// FormatERA renders an ERA with two decimals, or N/A when unknown
func FormatERA(era *float64) string {
	if era == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*era, 'f', 2, 64)
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}
