package catalogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

func TestFallbackCatalogue(t *testing.T) {
	gw := NewFallbackGateway()

	catalogue, err := gw.Analyze(context.Background(), output.AnalyzeRequest{
		Description: "some app idea",
		Platforms:   []string{"iOS", "Android"},
	})
	require.NoError(t, err)
	require.NotNil(t, catalogue)
	assert.NotEmpty(t, catalogue.AppOverview)

	var essentials, enhancements int
	byName := make(map[string]feature.Feature)
	for _, f := range catalogue.Features {
		byName[f.Name] = f
		switch f.Group {
		case feature.GroupEssential:
			essentials++
			assert.True(t, f.Selected, "essential features start selected: %s", f.Name)
		case feature.GroupEnhancement:
			enhancements++
			assert.False(t, f.Selected, "enhancements start unselected: %s", f.Name)
		}
	}
	assert.Equal(t, 6, essentials) // 4 fixed + one deployment per platform
	assert.Equal(t, 4, enhancements)

	ios := byName["Deployment (iOS)"]
	assert.Equal(t, "$450", ios.CostEstimate)
	android := byName["Deployment (Android)"]
	assert.Equal(t, "$350", android.CostEstimate)

	push := byName["Push Notifications"]
	assert.Equal(t, "$550", push.CostEstimate)
	assert.Equal(t, "4 days", push.TimeEstimate)
}

func TestFallbackCatalogueIsDeterministic(t *testing.T) {
	gw := NewFallbackGateway()
	req := output.AnalyzeRequest{Platforms: []string{"Web"}}

	a, err := gw.Analyze(context.Background(), req)
	require.NoError(t, err)
	b, err := gw.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	web, ok := a.FindByID("essential-5")
	require.True(t, ok)
	assert.Equal(t, "Deployment (Web)", web.Name)
	assert.Equal(t, "$300", web.CostEstimate)
}
