package feature

import (
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Group classifies a feature within the catalogue
type Group string

const (
	GroupEssential   Group = "essential"
	GroupEnhancement Group = "enhancement"
)

// IsValid validates the group
func (g Group) IsValid() bool {
	switch g {
	case GroupEssential, GroupEnhancement:
		return true
	default:
		return false
	}
}

// Feature is a selectable unit of app functionality with an associated
// cost/time estimate. Identity is immutable; Selected is the only field
// mutated after creation, and only by the dependency resolver.
type Feature struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Purpose      string `json:"purpose"`
	Category     string `json:"category"`
	CostEstimate string `json:"costEstimate"` // currency-range string, e.g. "$2,000-$3,000"
	TimeEstimate string `json:"timeEstimate"` // duration-range string, e.g. "2-3 weeks"
	Group        Group  `json:"group"`
	Selected     bool   `json:"isSelected"`
}

// NewCustomFeature creates a user-authored feature. Custom features join the
// enhancement group with a fresh unique ID and aggregate like any other.
func NewCustomFeature(name, description, costEstimate, timeEstimate string) (Feature, error) {
	if strings.TrimSpace(name) == "" {
		return Feature{}, errors.New("feature name cannot be empty")
	}
	return Feature{
		ID:           "custom-" + strings.ToLower(ulid.Make().String()),
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		CostEstimate: costEstimate,
		TimeEstimate: timeEstimate,
		Group:        GroupEnhancement,
		Selected:     true,
	}, nil
}

// Catalogue is the ordered feature set derived from the client's app idea.
// Slice order is canonical: essential features first, then enhancements,
// and the resolver uses this order to pick auto-select candidates.
type Catalogue struct {
	AppOverview string    `json:"appOverview"`
	Features    []Feature `json:"features"`
}

// Clone returns a deep copy of the catalogue
func (c *Catalogue) Clone() *Catalogue {
	features := make([]Feature, len(c.Features))
	copy(features, c.Features)
	return &Catalogue{
		AppOverview: c.AppOverview,
		Features:    features,
	}
}

// Selected returns the currently selected features in catalogue order
func (c *Catalogue) Selected() []Feature {
	var selected []Feature
	for _, f := range c.Features {
		if f.Selected {
			selected = append(selected, f)
		}
	}
	return selected
}

// FindByID returns the feature with the given ID, if present
func (c *Catalogue) FindByID(id string) (Feature, bool) {
	for _, f := range c.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// Append adds a feature to the end of the catalogue
func (c *Catalogue) Append(f Feature) {
	c.Features = append(c.Features, f)
}

// HasEnhancementSelected reports whether any selected feature belongs to
// the enhancement group
func (c *Catalogue) HasEnhancementSelected() bool {
	for _, f := range c.Features {
		if f.Selected && f.Group == GroupEnhancement {
			return true
		}
	}
	return false
}
