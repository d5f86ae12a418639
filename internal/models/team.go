package models

// Team is an MLB club as carried by the static reference tables
type Team struct {
	Name         string `json:"name" validate:"required"`
	Abbreviation string `json:"abbreviation" validate:"required,min=2,max=3,uppercase"`
	Stadium      string `json:"stadium" validate:"required"`
}

// Pitcher is a starting pitcher with an optional season ERA.
// A nil ERA means the value is unknown; it is never treated as zero.
type Pitcher struct {
	Name string   `json:"name" validate:"required"`
	Team string   `json:"team" validate:"required"`
	ERA  *float64 `json:"era" validate:"omitempty,gte=0"`
}

// HasERA reports whether the pitcher has a known ERA
func (p *Pitcher) HasERA() bool {
	return p != nil && p.ERA != nil
}
