package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomFeature(t *testing.T) {
	f, err := NewCustomFeature("  Loyalty Points  ", "reward repeat users", "$400", "3 days")
	require.NoError(t, err)

	assert.Equal(t, "Loyalty Points", f.Name)
	assert.Contains(t, f.ID, "custom-")
	assert.Equal(t, GroupEnhancement, f.Group)
	assert.True(t, f.Selected)

	other, err := NewCustomFeature("Another", "", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, f.ID, other.ID)
}

func TestNewCustomFeatureRequiresName(t *testing.T) {
	_, err := NewCustomFeature("   ", "desc", "$1", "1 day")
	assert.Error(t, err)
}

func TestCatalogueHelpers(t *testing.T) {
	c := &Catalogue{
		AppOverview: "overview",
		Features: []Feature{
			{ID: "a", Name: "A", Group: GroupEssential, Selected: true},
			{ID: "b", Name: "B", Group: GroupEnhancement},
		},
	}

	selected := c.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "a", selected[0].ID)

	f, ok := c.FindByID("b")
	require.True(t, ok)
	assert.Equal(t, "B", f.Name)
	_, ok = c.FindByID("missing")
	assert.False(t, ok)

	assert.False(t, c.HasEnhancementSelected())
	c.Features[1].Selected = true
	assert.True(t, c.HasEnhancementSelected())

	clone := c.Clone()
	clone.Features[0].Selected = false
	assert.True(t, c.Features[0].Selected, "clone must not share backing array")
}

func TestDependencyRuleMatching(t *testing.T) {
	rule := DependencyRule{
		Trigger:  []string{"push notification"},
		Requires: []string{"authentication", "login"},
	}

	assert.True(t, rule.Triggers("Push Notifications"))
	assert.False(t, rule.Triggers("Analytics"))
	assert.True(t, rule.SatisfiedBy("Authentication (Email)"))
	assert.True(t, rule.SatisfiedBy("User Login"))
	assert.False(t, rule.SatisfiedBy("Offline Mode"))
}

func TestLoadRules(t *testing.T) {
	doc := []byte(`
rules:
  - trigger: ["live chat"]
    requires: ["websocket"]
    message: "Live chat needs a realtime channel."
`)
	rules, err := LoadRules(doc)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Triggers("Live Chat Support"))
	assert.Equal(t, "Live chat needs a realtime channel.", rules[0].Message)
}

func TestLoadRulesRejectsIncompleteRule(t *testing.T) {
	_, err := LoadRules([]byte("rules:\n  - trigger: [\"x\"]\n"))
	assert.Error(t, err)

	_, err = LoadRules([]byte("rules: [{"))
	assert.Error(t, err)
}
