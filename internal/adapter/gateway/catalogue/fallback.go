package catalogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// FallbackGateway produces a deterministic generic catalogue when the
// analysis service is unreachable. Per-platform deployment features are
// derived from the requested platforms; everything else is fixed.
type FallbackGateway struct{}

// NewFallbackGateway creates the deterministic fallback provider
func NewFallbackGateway() *FallbackGateway {
	return &FallbackGateway{}
}

// Analyze builds the generic catalogue. It never fails.
func (g *FallbackGateway) Analyze(_ context.Context, req output.AnalyzeRequest) (*feature.Catalogue, error) {
	catalogue := &feature.Catalogue{
		AppOverview: "A custom application tailored to your requirements, covering the core flows described in your idea.",
	}

	essentials := []feature.Feature{
		{
			Name:         "UI/UX Design",
			Description:  "Wireframes, visual design, and interactive prototypes",
			Purpose:      "Give users an intuitive, polished interface",
			Category:     "Design",
			CostEstimate: "$500",
			TimeEstimate: "10 days",
		},
		{
			Name:         "Authentication (Email)",
			Description:  "Email and password sign-up and login",
			Purpose:      "Identify users and protect their data",
			Category:     "Security",
			CostEstimate: "$200",
			TimeEstimate: "1 day",
		},
		{
			Name:         "Authentication (Social Media)",
			Description:  "Sign in with Google, Apple, or Facebook",
			Purpose:      "Lower the barrier to creating an account",
			Category:     "Security",
			CostEstimate: "$200",
			TimeEstimate: "1 day",
		},
		{
			Name:         "User Profiles & Personalization",
			Description:  "Profile management and per-user preferences",
			Purpose:      "Let users tailor the app to themselves",
			Category:     "Core",
			CostEstimate: "$250",
			TimeEstimate: "2 days",
		},
	}
	essentials = append(essentials, deploymentFeatures(req.Platforms)...)

	enhancements := []feature.Feature{
		{
			Name:         "Push Notifications",
			Description:  "Targeted notifications for engagement and updates",
			Purpose:      "Bring users back to the app",
			Category:     "Engagement",
			CostEstimate: "$550",
			TimeEstimate: "4 days",
		},
		{
			Name:         "Analytics Integration",
			Description:  "Usage tracking and behavioral analytics",
			Purpose:      "Understand how the app is used",
			Category:     "Insights",
			CostEstimate: "$800",
			TimeEstimate: "7 days",
		},
		{
			Name:         "Offline Mode",
			Description:  "Local caching so core flows work without a connection",
			Purpose:      "Keep the app usable on poor networks",
			Category:     "Core",
			CostEstimate: "$850",
			TimeEstimate: "7 days",
		},
		{
			Name:         "In-App Purchases",
			Description:  "Digital goods and subscription billing",
			Purpose:      "Monetize directly inside the app",
			Category:     "Monetization",
			CostEstimate: "$1,000",
			TimeEstimate: "10 days",
		},
	}

	for i, f := range essentials {
		f.ID = fmt.Sprintf("essential-%d", i+1)
		f.Group = feature.GroupEssential
		f.Selected = true
		catalogue.Append(f)
	}
	for i, f := range enhancements {
		f.ID = fmt.Sprintf("enhancement-%d", i+1)
		f.Group = feature.GroupEnhancement
		catalogue.Append(f)
	}
	return catalogue, nil
}

func deploymentFeatures(platforms []string) []feature.Feature {
	var out []feature.Feature
	for _, platform := range platforms {
		var cost string
		switch strings.ToLower(platform) {
		case "ios":
			cost = "$450"
		case "android":
			cost = "$350"
		default:
			cost = "$300"
		}
		out = append(out, feature.Feature{
			Name:         fmt.Sprintf("Deployment (%s)", platform),
			Description:  fmt.Sprintf("Release setup and publishing for %s", platform),
			Purpose:      "Ship the app to its target platform",
			Category:     "Deployment",
			CostEstimate: cost,
			TimeEstimate: "14 days",
		})
	}
	return out
}
