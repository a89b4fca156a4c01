package check

import (
	"fmt"
	"sort"
	"strings"
)

// EvaluateDependencies runs the feature/option rules against the active
// sets. Pure function: no I/O, deterministic output order (mutual
// exclusivity, conflicts, required dependencies, conditional disable,
// auto-enable; declared order within each category). Issues from rules of
// the same category declaring an identical member set are de-duplicated,
// so a redundantly declared rule does not double-report. Distinct rules
// whose member sets merely overlap each report their own issue.
func EvaluateDependencies(features, options []string, rules *RuleSet) []Issue {
	active := make(map[string]bool, len(features)+len(options))
	for _, f := range features {
		active[f] = true
	}
	for _, o := range options {
		active[o] = true
	}

	dedup := newIssueDedup()
	var issues []Issue
	add := func(i Issue, declared []string) {
		if dedup.seen(i.Category, declared) {
			return
		}
		issues = append(issues, i)
	}

	for _, r := range rules.MutualExclusivity {
		if i, ok := checkMutualExclusivity(r, active); ok {
			add(i, r.Features)
		}
	}
	for _, r := range rules.Conflicts {
		if i, ok := checkConflict(r, active); ok {
			add(i, r.Between)
		}
	}
	for _, r := range rules.RequiredDependencies {
		if i, ok := checkRequiredDependency(r, active); ok {
			add(i, append([]string{r.Feature}, r.Requires...))
		}
	}
	for _, r := range rules.ConditionalDisables {
		if i, ok := checkConditionalDisable(r, active); ok {
			add(i, []string{r.Feature})
		}
	}
	for _, r := range rules.AutoEnables {
		if i, ok := checkAutoEnable(r, active); ok {
			declared := []string{r.Target}
			if r.Trigger != "" {
				declared = append(declared, r.Trigger)
			} else if r.When != nil {
				declared = append(declared, r.When.Features()...)
			}
			add(i, declared)
		}
	}

	return issues
}

// issueDedup suppresses repeated issues of the same category over an
// identical declared member set. Keys come from the rule declaration, not
// from the active subset an issue happens to name, so two different rules
// overlapping on the same active features still report separately.
type issueDedup struct {
	keys map[string]bool
}

func newIssueDedup() *issueDedup {
	return &issueDedup{keys: make(map[string]bool)}
}

func (d *issueDedup) seen(category Category, declared []string) bool {
	members := append([]string(nil), declared...)
	sort.Strings(members)
	key := string(category) + "|" + strings.Join(members, ",")
	if d.keys[key] {
		return true
	}
	d.keys[key] = true
	return false
}

func checkMutualExclusivity(r MutualExclusivityRule, active map[string]bool) (Issue, bool) {
	var selected []string
	for _, f := range r.Features {
		if active[f] {
			selected = append(selected, f)
		}
	}

	switch {
	case len(selected) > 1:
		msg := r.Message
		if msg == "" {
			msg = fmt.Sprintf("group %q allows only one active member, found %d", r.Group, len(selected))
		}
		issue := Issue{
			Severity: SeverityError,
			Category: CategoryMutualExclusivity,
			RuleID:   r.ID,
			Message:  msg,
			Features: selected,
		}
		if len(selected) == 2 && len(r.Priority) > 0 {
			keep := firstByPriority(selected, r.Priority)
			var actions []Action
			for _, f := range selected {
				if f != keep {
					actions = append(actions, Action{Op: OpDisableFeature, Feature: f})
				}
			}
			issue.Fix = &Fix{Actions: actions}
			issue.Suggestion = fmt.Sprintf("keep %s, disable the rest", keep)
		} else {
			issue.Suggestion = fmt.Sprintf("disable all but one of: %s", strings.Join(selected, ", "))
		}
		return issue, true

	case len(selected) == 0 && r.ExactlyOne:
		msg := r.Message
		if msg == "" {
			msg = fmt.Sprintf("group %q requires exactly one active member, found none", r.Group)
		}
		// Which member to enable is the user's choice; no fix.
		return Issue{
			Severity:   SeverityError,
			Category:   CategoryMutualExclusivity,
			RuleID:     r.ID,
			Message:    msg,
			Features:   append([]string(nil), r.Features...),
			Suggestion: fmt.Sprintf("enable one of: %s", strings.Join(r.Features, ", ")),
		}, true
	}

	return Issue{}, false
}

func checkConflict(r ConflictRule, active map[string]bool) (Issue, bool) {
	// ParseRules enforces this; guard for programmatically built rules.
	if len(r.Between) != 2 {
		return Issue{}, false
	}
	a, b := r.Between[0], r.Between[1]
	if !active[a] || !active[b] {
		return Issue{}, false
	}

	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("%s and %s cannot both be active", a, b)
	}
	issue := Issue{
		Severity: SeverityError,
		Category: CategoryConflict,
		RuleID:   r.ID,
		Message:  msg,
		Features: []string{a, b},
	}
	if len(r.Priority) > 0 {
		keep := r.Priority[0]
		drop := a
		if drop == keep {
			drop = b
		}
		issue.Fix = &Fix{Actions: []Action{{Op: OpDisableFeature, Feature: drop}}}
		issue.Suggestion = fmt.Sprintf("keep %s, disable %s", keep, drop)
	} else {
		issue.Suggestion = fmt.Sprintf("disable either %s or %s", a, b)
	}
	return issue, true
}

func checkRequiredDependency(r RequiredDependencyRule, active map[string]bool) (Issue, bool) {
	if !active[r.Feature] {
		return Issue{}, false
	}

	var missing []string
	for _, req := range r.Requires {
		if !active[req] {
			missing = append(missing, req)
		}
	}

	if r.Mode == ModeAny {
		if len(missing) < len(r.Requires) {
			return Issue{}, false // at least one satisfied
		}
		msg := r.Message
		if msg == "" {
			msg = fmt.Sprintf("%s requires at least one of: %s", r.Feature, strings.Join(r.Requires, ", "))
		}
		// The first declared member is the priority choice.
		pick := r.Requires[0]
		return Issue{
			Severity:   SeverityError,
			Category:   CategoryRequiredDependency,
			RuleID:     r.ID,
			Message:    msg,
			Features:   append([]string{r.Feature}, r.Requires...),
			Suggestion: fmt.Sprintf("enable %s", pick),
			Fix:        &Fix{Actions: []Action{{Op: OpEnableFeature, Feature: pick}}},
		}, true
	}

	if len(missing) == 0 {
		return Issue{}, false
	}
	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("%s requires %s", r.Feature, strings.Join(missing, " and "))
	}
	actions := make([]Action, 0, len(missing))
	for _, f := range missing {
		actions = append(actions, Action{Op: OpEnableFeature, Feature: f})
	}
	return Issue{
		Severity:   SeverityError,
		Category:   CategoryRequiredDependency,
		RuleID:     r.ID,
		Message:    msg,
		Features:   append([]string{r.Feature}, missing...),
		Suggestion: fmt.Sprintf("enable: %s", strings.Join(missing, ", ")),
		Fix:        &Fix{Actions: actions},
	}, true
}

func checkConditionalDisable(r ConditionalDisableRule, active map[string]bool) (Issue, bool) {
	if !active[r.Feature] || r.When.Eval(active) {
		return Issue{}, false
	}

	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("%s must not be active without %s", r.Feature, r.When)
	}
	return Issue{
		Severity:   SeverityError,
		Category:   CategoryConditionalDisable,
		RuleID:     r.ID,
		Message:    msg,
		Features:   []string{r.Feature},
		Suggestion: fmt.Sprintf("disable %s", r.Feature),
		Fix:        &Fix{Actions: []Action{{Op: OpDisableFeature, Feature: r.Feature}}},
	}, true
}

func checkAutoEnable(r AutoEnableRule, active map[string]bool) (Issue, bool) {
	triggered := false
	if r.Trigger != "" {
		triggered = active[r.Trigger]
	} else if r.When != nil {
		triggered = r.When.Eval(active)
	}
	if !triggered || active[r.Target] {
		return Issue{}, false
	}

	severity := SeverityInfo
	if r.Mandatory {
		severity = SeverityError
	}
	msg := r.Message
	if msg == "" {
		trigger := r.Trigger
		if trigger == "" {
			trigger = r.When.String()
		}
		msg = fmt.Sprintf("%s should be enabled when %s is active", r.Target, trigger)
	}
	features := []string{r.Target}
	if r.Trigger != "" {
		features = append(features, r.Trigger)
	}
	return Issue{
		Severity:   severity,
		Category:   CategoryAutoEnable,
		RuleID:     r.ID,
		Message:    msg,
		Features:   features,
		Suggestion: fmt.Sprintf("enable %s", r.Target),
		Fix:        &Fix{Actions: []Action{{Op: OpEnableFeature, Feature: r.Target}}},
	}, true
}

func firstByPriority(members, priority []string) string {
	inGroup := make(map[string]bool, len(members))
	for _, m := range members {
		inGroup[m] = true
	}
	for _, p := range priority {
		if inGroup[p] {
			return p
		}
	}
	return members[0]
}
