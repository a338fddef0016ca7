// Package resolver keeps a feature selection internally consistent with the
// declared dependency rules. All functions are pure: they take the full
// feature list plus a toggle and return a new list, never mutating input.
package resolver

import (
	"fmt"

	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// Notice describes an auto-selection performed while selecting a feature
type Notice struct {
	AutoSelected feature.Feature
	Trigger      feature.Feature
	Message      string
}

// Confirmation is a pending user decision: deselecting Target would leave
// the listed dependents without a required capability. No mutation has been
// applied; the caller either abandons the toggle or calls ConfirmDeselect.
type Confirmation struct {
	Target     feature.Feature
	Dependents []feature.Feature
}

// Result is the outcome of a toggle
type Result struct {
	Features []feature.Feature
	Notice   *Notice       // set when a dependency was auto-selected
	Pending  *Confirmation // set when a deselect needs confirmation; Features is unchanged
}

// Toggle applies a selection change for the feature with the given ID and
// resolves dependencies. Selecting may auto-select at most one prerequisite
// (first matching rule, first unselected candidate in catalogue order).
// Deselecting a feature that other selected features depend on returns a
// pending confirmation instead of mutating.
func Toggle(features []feature.Feature, rules []feature.DependencyRule, id string, wantSelect bool) (Result, error) {
	idx := indexOf(features, id)
	if idx < 0 {
		return Result{}, fmt.Errorf("unknown feature: %s", id)
	}
	if wantSelect {
		return selectFeature(features, rules, idx), nil
	}
	return deselectFeature(features, rules, idx), nil
}

// ConfirmDeselect applies a previously confirmed cascade: the target and
// every dependent that would become unsatisfied are deselected together,
// atomically.
func ConfirmDeselect(features []feature.Feature, rules []feature.DependencyRule, id string) (Result, error) {
	idx := indexOf(features, id)
	if idx < 0 {
		return Result{}, fmt.Errorf("unknown feature: %s", id)
	}
	out := clone(features)
	for _, dep := range dependentsOf(out, rules, idx) {
		out[dep].Selected = false
	}
	out[idx].Selected = false
	return Result{Features: out}, nil
}

// Unsatisfied returns the rules violated by the current selection: a
// selected feature triggers the rule, no selected feature satisfies it, and
// at least one catalogue feature could. Rules no catalogue feature can
// satisfy are skipped.
func Unsatisfied(features []feature.Feature, rules []feature.DependencyRule) []feature.DependencyRule {
	var violated []feature.DependencyRule
	for _, rule := range rules {
		triggered := false
		for _, f := range features {
			if f.Selected && rule.Triggers(f.Name) {
				triggered = true
				break
			}
		}
		if !triggered || satisfied(features, rule) || !satisfiable(features, rule) {
			continue
		}
		violated = append(violated, rule)
	}
	return violated
}

func selectFeature(features []feature.Feature, rules []feature.DependencyRule, idx int) Result {
	out := clone(features)
	out[idx].Selected = true

	// Resolve at most one dependency: first triggered-and-unsatisfied rule,
	// first unselected candidate in catalogue order. Unsatisfiable rules
	// (no candidate anywhere in the catalogue) are skipped.
	for _, rule := range rules {
		if !rule.Triggers(out[idx].Name) || satisfied(out, rule) {
			continue
		}
		for i, candidate := range out {
			if candidate.Selected || !rule.SatisfiedBy(candidate.Name) {
				continue
			}
			out[i].Selected = true
			return Result{
				Features: out,
				Notice: &Notice{
					AutoSelected: out[i],
					Trigger:      out[idx],
					Message:      rule.Message,
				},
			}
		}
	}
	return Result{Features: out}
}

func deselectFeature(features []feature.Feature, rules []feature.DependencyRule, idx int) Result {
	dependents := dependentsOf(features, rules, idx)
	if len(dependents) > 0 {
		affected := make([]feature.Feature, 0, len(dependents))
		for _, i := range dependents {
			affected = append(affected, features[i])
		}
		return Result{
			Features: features,
			Pending: &Confirmation{
				Target:     features[idx],
				Dependents: affected,
			},
		}
	}
	out := clone(features)
	out[idx].Selected = false
	return Result{Features: out}
}

// dependentsOf returns the indices of selected features that would lose a
// required capability if features[idx] were deselected: some rule they
// trigger is satisfied by the target and by no other selected feature.
func dependentsOf(features []feature.Feature, rules []feature.DependencyRule, idx int) []int {
	target := features[idx]
	var dependents []int
	for i, f := range features {
		if i == idx || !f.Selected {
			continue
		}
		for _, rule := range rules {
			if !rule.Triggers(f.Name) || !rule.SatisfiedBy(target.Name) {
				continue
			}
			if uniquelySatisfiedBy(features, rule, idx) {
				dependents = append(dependents, i)
				break
			}
		}
	}
	return dependents
}

// uniquelySatisfiedBy reports whether features[idx] is the only selected
// feature satisfying the rule
func uniquelySatisfiedBy(features []feature.Feature, rule feature.DependencyRule, idx int) bool {
	for i, f := range features {
		if i == idx || !f.Selected {
			continue
		}
		if rule.SatisfiedBy(f.Name) {
			return false
		}
	}
	return true
}

func satisfied(features []feature.Feature, rule feature.DependencyRule) bool {
	for _, f := range features {
		if f.Selected && rule.SatisfiedBy(f.Name) {
			return true
		}
	}
	return false
}

func satisfiable(features []feature.Feature, rule feature.DependencyRule) bool {
	for _, f := range features {
		if rule.SatisfiedBy(f.Name) {
			return true
		}
	}
	return false
}

func indexOf(features []feature.Feature, id string) int {
	for i, f := range features {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func clone(features []feature.Feature) []feature.Feature {
	out := make([]feature.Feature, len(features))
	copy(out, features)
	return out
}
