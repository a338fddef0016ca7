package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

func testFeatures() []feature.Feature {
	return []feature.Feature{
		{ID: "f1", Name: "UI/UX Design", Group: feature.GroupEssential, Selected: true},
		{ID: "f2", Name: "Authentication (Email)", Group: feature.GroupEssential},
		{ID: "f3", Name: "Authentication (Social Media)", Group: feature.GroupEssential},
		{ID: "f4", Name: "Push Notifications", Group: feature.GroupEnhancement},
		{ID: "f5", Name: "In-App Purchases", Group: feature.GroupEnhancement},
		{ID: "f6", Name: "Offline Mode", Group: feature.GroupEnhancement},
	}
}

func TestToggleSelectAutoSelectsDependency(t *testing.T) {
	features := testFeatures()

	res, err := Toggle(features, feature.DefaultRules(), "f4", true)
	require.NoError(t, err)

	// Push Notifications pulls in the first unselected auth feature in
	// catalogue order
	assert.True(t, res.Features[3].Selected)
	assert.True(t, res.Features[1].Selected, "email auth should be auto-selected")
	assert.False(t, res.Features[2].Selected, "only one dependency may be auto-selected")

	require.NotNil(t, res.Notice)
	assert.Equal(t, "f2", res.Notice.AutoSelected.ID)
	assert.Equal(t, "f4", res.Notice.Trigger.ID)
	assert.NotEmpty(t, res.Notice.Message)

	// input is untouched
	assert.False(t, features[1].Selected)
}

func TestToggleSelectSatisfiedRuleNeedsNoAutoSelect(t *testing.T) {
	features := testFeatures()
	features[1].Selected = true

	res, err := Toggle(features, feature.DefaultRules(), "f4", true)
	require.NoError(t, err)

	assert.True(t, res.Features[3].Selected)
	assert.Nil(t, res.Notice)
}

func TestToggleSelectUnsatisfiableRuleIsSkipped(t *testing.T) {
	// Offline Mode requires a sync feature that no catalogue entry provides
	res, err := Toggle(testFeatures(), feature.DefaultRules(), "f6", true)
	require.NoError(t, err)

	assert.True(t, res.Features[5].Selected)
	assert.Nil(t, res.Notice)
	assert.Nil(t, res.Pending)
}

func TestToggleDeselectWithDependentsReturnsPending(t *testing.T) {
	features := testFeatures()
	features[1].Selected = true // Authentication (Email)
	features[3].Selected = true // Push Notifications

	res, err := Toggle(features, feature.DefaultRules(), "f2", false)
	require.NoError(t, err)

	require.NotNil(t, res.Pending)
	assert.Equal(t, "f2", res.Pending.Target.ID)
	require.Len(t, res.Pending.Dependents, 1)
	assert.Equal(t, "f4", res.Pending.Dependents[0].ID)

	// nothing changed yet
	assert.True(t, res.Features[1].Selected)
	assert.True(t, res.Features[3].Selected)
}

func TestToggleDeselectWithAlternativeProviderSucceeds(t *testing.T) {
	features := testFeatures()
	features[1].Selected = true // email auth
	features[2].Selected = true // social auth
	features[3].Selected = true // push notifications

	res, err := Toggle(features, feature.DefaultRules(), "f2", false)
	require.NoError(t, err)

	// social auth still satisfies the rule, so no confirmation needed
	assert.Nil(t, res.Pending)
	assert.False(t, res.Features[1].Selected)
	assert.True(t, res.Features[3].Selected)
}

func TestConfirmDeselectCascades(t *testing.T) {
	features := testFeatures()
	features[1].Selected = true
	features[3].Selected = true
	features[4].Selected = true // In-App Purchases also depends on auth

	res, err := ConfirmDeselect(features, feature.DefaultRules(), "f2")
	require.NoError(t, err)

	assert.False(t, res.Features[1].Selected)
	assert.False(t, res.Features[3].Selected)
	assert.False(t, res.Features[4].Selected)
	assert.True(t, res.Features[0].Selected, "unrelated features keep their state")
}

func TestToggleUnknownFeature(t *testing.T) {
	_, err := Toggle(testFeatures(), feature.DefaultRules(), "missing", true)
	assert.Error(t, err)

	_, err = ConfirmDeselect(testFeatures(), feature.DefaultRules(), "missing")
	assert.Error(t, err)
}

func TestUnsatisfied(t *testing.T) {
	features := testFeatures()
	features[3].Selected = true // push notifications, no auth selected

	violated := Unsatisfied(features, feature.DefaultRules())
	require.Len(t, violated, 1)
	assert.Contains(t, violated[0].Trigger, "push notification")

	// selecting auth clears the violation
	features[1].Selected = true
	assert.Empty(t, Unsatisfied(features, feature.DefaultRules()))
}

func TestUnsatisfiedSkipsUnsatisfiableRules(t *testing.T) {
	features := testFeatures()
	features[5].Selected = true // offline mode, no sync feature exists

	assert.Empty(t, Unsatisfied(features, feature.DefaultRules()))
}
