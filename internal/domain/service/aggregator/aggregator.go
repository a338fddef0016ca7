// Package aggregator computes cost/time estimates from a feature selection.
// Aggregate is pure and deterministic: the same selection always yields the
// same estimate.
package aggregator

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// parallelizationFactor models partial schedule overlap: not every feature
// is built sequentially, so raw day sums are discounted by 30%.
const parallelizationFactor = 0.7

// monthThreshold is the adjusted day count at which totals switch to months
const monthThreshold = 60

// defaultCategory is the breakdown bucket for features without a category
const defaultCategory = "Development"

var printer = message.NewPrinter(language.English)

// Aggregate computes the estimate for the selected features
func Aggregate(selected []feature.Feature) blueprint.Estimate {
	totalCost := 0
	rawDays := 0
	breakdown := make(map[string]int)
	hasEnhancement := false

	for _, f := range selected {
		cost := parseLeadingAmount(f.CostEstimate)
		totalCost += cost
		rawDays += parseLeadingDays(f.TimeEstimate)

		category := f.Category
		if strings.TrimSpace(category) == "" {
			category = defaultCategory
		}
		breakdown[category] += cost

		if f.Group == feature.GroupEnhancement {
			hasEnhancement = true
		}
	}

	totalDays := int(math.Ceil(float64(rawDays) * parallelizationFactor))
	minDays, maxDays := band(totalDays)

	return blueprint.Estimate{
		TotalCost:      totalCost,
		CostLabel:      printer.Sprintf("$%d", totalCost),
		TotalDays:      totalDays,
		MinDays:        minDays,
		MaxDays:        maxDays,
		TimeLabel:      timeLabel(totalDays, minDays, maxDays),
		CostBreakdown:  breakdown,
		TimelinePhases: timelinePhases(minDays, hasEnhancement),
	}
}

// band widens the adjusted total by ±10% to express estimate uncertainty
func band(totalDays int) (minDays, maxDays int) {
	if totalDays == 0 {
		return 0, 0
	}
	minDays = int(math.Floor(float64(totalDays) * 0.9))
	if minDays < 1 {
		minDays = 1
	}
	maxDays = int(math.Ceil(float64(totalDays) * 1.1))
	return minDays, maxDays
}

// timeLabel renders the banded total. At or above the month threshold both
// ends convert to whole months (ceiling); a collapsed band renders as a
// single value.
func timeLabel(totalDays, minDays, maxDays int) string {
	if totalDays >= monthThreshold {
		minMonths := int(math.Ceil(float64(minDays) / 30))
		maxMonths := int(math.Ceil(float64(maxDays) / 30))
		if minMonths == maxMonths {
			return fmt.Sprintf("%d months", minMonths)
		}
		return fmt.Sprintf("%d-%d months", minMonths, maxMonths)
	}
	if minDays == maxDays {
		return fmt.Sprintf("%d days", minDays)
	}
	return fmt.Sprintf("%d-%d days", minDays, maxDays)
}

// timelinePhases emits the fixed phase sequence: Design, Core Development,
// an Advanced Features phase only when enhancements are selected, then
// Testing & Deployment. Duration labels come from two bands split at a
// 30-day minimum.
func timelinePhases(minDays int, hasEnhancement bool) []blueprint.TimelinePhase {
	short := minDays <= 30

	phases := []blueprint.TimelinePhase{
		{
			Phase:       "Design",
			Duration:    pick(short, "1-2 weeks", "2-4 weeks"),
			Description: "User research, wireframing, and UI/UX design",
		},
		{
			Phase:       "Core Development",
			Duration:    pick(short, "2-4 weeks", "1-3 months"),
			Description: "Feature implementation, backend development, and API integration",
		},
	}
	if hasEnhancement {
		phases = append(phases, blueprint.TimelinePhase{
			Phase:       "Advanced Features",
			Duration:    pick(short, "1-2 weeks", "3-6 weeks"),
			Description: "Enhancement features layered on the core build",
		})
	}
	return append(phases, blueprint.TimelinePhase{
		Phase:       "Testing & Deployment",
		Duration:    pick(short, "1 week", "2-3 weeks"),
		Description: "Quality assurance, performance tuning, and store deployment",
	})
}

func pick(short bool, a, b string) string {
	if short {
		return a
	}
	return b
}

// parseLeadingAmount extracts the leading numeric token from a currency
// string such as "$2,000-$3,000", stripping symbols and thousands
// separators. Unparseable strings contribute 0 rather than an error.
func parseLeadingAmount(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	value := 0
	for _, r := range s[start:] {
		switch {
		case r >= '0' && r <= '9':
			value = value*10 + int(r-'0')
		case r == ',':
			// thousands separator
		default:
			return value
		}
	}
	return value
}

// parseLeadingDays extracts the leading day count from a duration string
// such as "5 days" or "2-3 weeks" (the leading number of the range)
func parseLeadingDays(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	value := 0
	for _, r := range s[start:] {
		if r < '0' || r > '9' {
			break
		}
		value = value*10 + int(r-'0')
	}
	return value
}
