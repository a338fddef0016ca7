package feature

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DependencyRule is a declarative constraint linking features that match
// Trigger keywords to a prerequisite capability matched by Requires
// keywords. Matching is case-insensitive substring match against feature
// names. Rules are static and evaluated in declaration order.
type DependencyRule struct {
	Trigger  []string `yaml:"trigger"`
	Requires []string `yaml:"requires"`
	Message  string   `yaml:"message"`
}

// Triggers reports whether the feature name matches any trigger keyword
func (r DependencyRule) Triggers(name string) bool {
	return matchesAny(name, r.Trigger)
}

// SatisfiedBy reports whether the feature name matches any required keyword
func (r DependencyRule) SatisfiedBy(name string) bool {
	return matchesAny(name, r.Requires)
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in dependency rule set. Declaration order
// is the evaluation order.
func DefaultRules() []DependencyRule {
	return []DependencyRule{
		{
			Trigger:  []string{"push notification"},
			Requires: []string{"authentication", "login", "account"},
			Message:  "Push notifications need user accounts to target individual devices.",
		},
		{
			Trigger:  []string{"payment", "in-app purchase", "checkout"},
			Requires: []string{"authentication", "login"},
			Message:  "Payments require authenticated users for transaction history and refunds.",
		},
		{
			Trigger:  []string{"chat", "messaging"},
			Requires: []string{"authentication", "login"},
			Message:  "Chat requires authenticated users so messages can be addressed.",
		},
		{
			Trigger:  []string{"personalization", "recommendation"},
			Requires: []string{"profile"},
			Message:  "Personalization builds on user profiles to store preferences.",
		},
		{
			Trigger:  []string{"offline"},
			Requires: []string{"data sync", "synchronization"},
			Message:  "Offline mode needs a synchronization layer to reconcile local changes.",
		},
	}
}

// LoadRules parses a yaml dependency-rule document. The file replaces the
// built-in rule set entirely when present.
func LoadRules(data []byte) ([]DependencyRule, error) {
	var doc struct {
		Rules []DependencyRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dependency rules: %w", err)
	}
	for i, r := range doc.Rules {
		if len(r.Trigger) == 0 || len(r.Requires) == 0 {
			return nil, fmt.Errorf("rule %d: trigger and requires must be non-empty", i)
		}
	}
	return doc.Rules, nil
}
