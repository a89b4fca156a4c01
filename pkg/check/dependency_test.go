package check

import (
	"reflect"
	"testing"
)

func singleIssue(t *testing.T, issues []Issue) Issue {
	t.Helper()
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %d: %v", len(issues), issues)
	}
	return issues[0]
}

func TestMutualExclusivityViolation(t *testing.T) {
	rules := &RuleSet{MutualExclusivity: []MutualExclusivityRule{{
		ID:       "protocol",
		Group:    "protocol",
		Features: []string{"PROTO_A", "PROTO_B", "PROTO_C"},
		Priority: []string{"PROTO_A", "PROTO_B", "PROTO_C"},
	}}}

	issues := EvaluateDependencies([]string{"PROTO_A", "PROTO_B"}, nil, rules)
	issue := singleIssue(t, issues)

	if issue.Severity != SeverityError || issue.Category != CategoryMutualExclusivity {
		t.Errorf("wrong classification: %v", issue)
	}
	if !reflect.DeepEqual(issue.Features, []string{"PROTO_A", "PROTO_B"}) {
		t.Errorf("Features = %v", issue.Features)
	}
	if issue.Fix == nil {
		t.Fatal("two active members with a priority order should carry a fix")
	}
	want := []Action{{Op: OpDisableFeature, Feature: "PROTO_B"}}
	if !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want %v", issue.Fix.Actions, want)
	}
}

func TestMutualExclusivityNoFixCases(t *testing.T) {
	// Three active members: fix is ambiguous even with a priority order.
	rules := &RuleSet{MutualExclusivity: []MutualExclusivityRule{{
		ID:       "g",
		Group:    "g",
		Features: []string{"A", "B", "C"},
		Priority: []string{"A", "B", "C"},
	}}}
	issue := singleIssue(t, EvaluateDependencies([]string{"A", "B", "C"}, nil, rules))
	if issue.Fix != nil {
		t.Error("three-way violation must not carry a fix")
	}

	// Two active members but no priority order declared.
	rules = &RuleSet{MutualExclusivity: []MutualExclusivityRule{{
		ID:       "g",
		Group:    "g",
		Features: []string{"A", "B"},
	}}}
	issue = singleIssue(t, EvaluateDependencies([]string{"A", "B"}, nil, rules))
	if issue.Fix != nil {
		t.Error("violation without a priority order must not carry a fix")
	}
	if issue.Suggestion == "" {
		t.Error("unfixed violation still needs a textual suggestion")
	}
}

func TestExactlyOneGroup(t *testing.T) {
	rules := &RuleSet{MutualExclusivity: []MutualExclusivityRule{{
		ID:         "g",
		Group:      "g",
		Features:   []string{"A", "B"},
		ExactlyOne: true,
	}}}

	// Zero active members: error, no fix (choice is the user's).
	issue := singleIssue(t, EvaluateDependencies(nil, nil, rules))
	if issue.Severity != SeverityError || issue.Fix != nil {
		t.Errorf("zero-selected: %v", issue)
	}

	// Exactly one: clean.
	if issues := EvaluateDependencies([]string{"A"}, nil, rules); len(issues) != 0 {
		t.Errorf("one selected should pass, got %v", issues)
	}

	// Two: error.
	issue = singleIssue(t, EvaluateDependencies([]string{"A", "B"}, nil, rules))
	if issue.Severity != SeverityError {
		t.Errorf("two-selected: %v", issue)
	}
}

func TestConflict(t *testing.T) {
	rules := &RuleSet{Conflicts: []ConflictRule{{
		ID:       "c",
		Between:  []string{"A", "B"},
		Priority: []string{"A", "B"},
	}}}

	if issues := EvaluateDependencies([]string{"A"}, nil, rules); len(issues) != 0 {
		t.Errorf("single side active should pass, got %v", issues)
	}

	issue := singleIssue(t, EvaluateDependencies([]string{"A", "B"}, nil, rules))
	if issue.Category != CategoryConflict {
		t.Errorf("category = %s", issue.Category)
	}
	want := []Action{{Op: OpDisableFeature, Feature: "B"}}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want disable B", issue.Fix)
	}
}

func TestConflictWithoutPriorityHasNoFix(t *testing.T) {
	rules := &RuleSet{Conflicts: []ConflictRule{{ID: "c", Between: []string{"A", "B"}}}}
	issue := singleIssue(t, EvaluateDependencies([]string{"A", "B"}, nil, rules))
	if issue.Fix != nil {
		t.Error("conflict without priority must not carry a fix")
	}
}

func TestRequiredDependencyAll(t *testing.T) {
	rules := &RuleSet{RequiredDependencies: []RequiredDependencyRule{{
		ID:       "moon",
		Feature:  "MOON",
		Requires: []string{"ELEV", "CLOCK"},
	}}}

	issue := singleIssue(t, EvaluateDependencies([]string{"MOON"}, nil, rules))
	if issue.Category != CategoryRequiredDependency || issue.Severity != SeverityError {
		t.Errorf("classification: %v", issue)
	}
	want := []Action{
		{Op: OpEnableFeature, Feature: "ELEV"},
		{Op: OpEnableFeature, Feature: "CLOCK"},
	}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want enable both", issue.Fix)
	}

	// Partially satisfied: only the missing one is enabled.
	issue = singleIssue(t, EvaluateDependencies([]string{"MOON", "ELEV"}, nil, rules))
	want = []Action{{Op: OpEnableFeature, Feature: "CLOCK"}}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want enable CLOCK only", issue.Fix)
	}

	// Fully satisfied: clean.
	if issues := EvaluateDependencies([]string{"MOON", "ELEV", "CLOCK"}, nil, rules); len(issues) != 0 {
		t.Errorf("satisfied rule fired: %v", issues)
	}

	// Subject inactive: rule does not apply.
	if issues := EvaluateDependencies([]string{"ELEV"}, nil, rules); len(issues) != 0 {
		t.Errorf("inactive subject fired: %v", issues)
	}
}

func TestRequiredDependencyAny(t *testing.T) {
	rules := &RuleSet{RequiredDependencies: []RequiredDependencyRule{{
		ID:       "clock-src",
		Feature:  "CLOCK",
		Requires: []string{"GPS", "RTC"},
		Mode:     ModeAny,
	}}}

	issue := singleIssue(t, EvaluateDependencies([]string{"CLOCK"}, nil, rules))
	// The first declared member is the deterministic choice.
	want := []Action{{Op: OpEnableFeature, Feature: "GPS"}}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want enable GPS", issue.Fix)
	}

	if issues := EvaluateDependencies([]string{"CLOCK", "RTC"}, nil, rules); len(issues) != 0 {
		t.Errorf("any-mode satisfied by RTC still fired: %v", issues)
	}
}

func TestConditionalDisable(t *testing.T) {
	rules := &RuleSet{ConditionalDisables: []ConditionalDisableRule{{
		ID:      "limits",
		Feature: "OPTION_LIMITS",
		When:    &Predicate{Active: "ELEV"},
	}}}

	issue := singleIssue(t, EvaluateDependencies(nil, []string{"OPTION_LIMITS"}, rules))
	if issue.Severity != SeverityError || issue.Category != CategoryConditionalDisable {
		t.Errorf("classification: %v", issue)
	}
	want := []Action{{Op: OpDisableFeature, Feature: "OPTION_LIMITS"}}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v, want disable subject", issue.Fix)
	}

	if issues := EvaluateDependencies([]string{"ELEV"}, []string{"OPTION_LIMITS"}, rules); len(issues) != 0 {
		t.Errorf("satisfied context fired: %v", issues)
	}
}

func TestAutoEnable(t *testing.T) {
	rules := &RuleSet{AutoEnables: []AutoEnableRule{{
		ID:      "gps-clock",
		Trigger: "GPS",
		Target:  "CLOCK",
	}}}

	issue := singleIssue(t, EvaluateDependencies([]string{"GPS"}, nil, rules))
	if issue.Severity != SeverityInfo {
		t.Errorf("auto-enable must be info, got %s", issue.Severity)
	}
	want := []Action{{Op: OpEnableFeature, Feature: "CLOCK"}}
	if issue.Fix == nil || !reflect.DeepEqual(issue.Fix.Actions, want) {
		t.Errorf("Fix = %v", issue.Fix)
	}

	if issues := EvaluateDependencies([]string{"GPS", "CLOCK"}, nil, rules); len(issues) != 0 {
		t.Errorf("target already active still fired: %v", issues)
	}
}

func TestAutoEnableMandatory(t *testing.T) {
	rules := &RuleSet{AutoEnables: []AutoEnableRule{{
		ID:        "wire",
		When:      &Predicate{Any: []*Predicate{{Active: "HMC5883L"}, {Active: "LSM303"}}},
		Target:    "WIRE",
		Mandatory: true,
	}}}

	issue := singleIssue(t, EvaluateDependencies([]string{"LSM303"}, nil, rules))
	if issue.Severity != SeverityError {
		t.Errorf("mandatory auto-enable must be error, got %s", issue.Severity)
	}
}

func TestEvaluationOrder(t *testing.T) {
	rules := &RuleSet{
		MutualExclusivity: []MutualExclusivityRule{{
			ID: "m", Group: "g", Features: []string{"A", "B"},
		}},
		Conflicts: []ConflictRule{{ID: "c", Between: []string{"A", "X"}}},
		RequiredDependencies: []RequiredDependencyRule{{
			ID: "r", Feature: "A", Requires: []string{"DEP"},
		}},
		AutoEnables: []AutoEnableRule{{ID: "ae", Trigger: "A", Target: "OPT"}},
	}

	issues := EvaluateDependencies([]string{"A", "B", "X"}, nil, rules)
	wantCategories := []Category{
		CategoryMutualExclusivity,
		CategoryConflict,
		CategoryRequiredDependency,
		CategoryAutoEnable,
	}
	if len(issues) != len(wantCategories) {
		t.Fatalf("got %d issues: %v", len(issues), issues)
	}
	for i, want := range wantCategories {
		if issues[i].Category != want {
			t.Errorf("issue %d category = %s, want %s", i, issues[i].Category, want)
		}
	}
}

func TestDuplicateRuleDeduplicated(t *testing.T) {
	rules := &RuleSet{Conflicts: []ConflictRule{
		{ID: "c1", Between: []string{"A", "B"}},
		{ID: "c2", Between: []string{"B", "A"}}, // redundant declaration
	}}
	issues := EvaluateDependencies([]string{"A", "B"}, nil, rules)
	if len(issues) != 1 {
		t.Errorf("redundant rule not de-duplicated: %v", issues)
	}
}

func TestOverlappingGroupsReportSeparately(t *testing.T) {
	// Two distinct groups sharing two members. With exactly the shared
	// members active, both rules fail and each must report its own issue;
	// de-duplication only applies to identical declared member sets.
	rules := &RuleSet{MutualExclusivity: []MutualExclusivityRule{
		{ID: "g1", Group: "g1", Features: []string{"A", "B", "C"}},
		{ID: "g2", Group: "g2", Features: []string{"A", "B", "D"}},
	}}
	issues := EvaluateDependencies([]string{"A", "B"}, nil, rules)
	if len(issues) != 2 {
		t.Fatalf("expected one issue per failing rule, got %d: %v", len(issues), issues)
	}
	if issues[0].RuleID != "g1" || issues[1].RuleID != "g2" {
		t.Errorf("rule ids = %s, %s", issues[0].RuleID, issues[1].RuleID)
	}
}

func TestMalformedConflictRuleIgnored(t *testing.T) {
	rules := &RuleSet{Conflicts: []ConflictRule{
		{ID: "broken", Between: []string{"A"}},
		{ID: "ok", Between: []string{"A", "B"}},
	}}
	issues := EvaluateDependencies([]string{"A", "B"}, nil, rules)
	if len(issues) != 1 || issues[0].RuleID != "ok" {
		t.Errorf("got %v", issues)
	}
}

func TestUnknownIdentifiersNeverSatisfy(t *testing.T) {
	rules := &RuleSet{RequiredDependencies: []RequiredDependencyRule{{
		ID: "r", Feature: "A", Requires: []string{"DEP"},
	}}}
	// FUTURE_THING is tolerated in the configuration but does not
	// satisfy anything.
	issues := EvaluateDependencies([]string{"A", "FUTURE_THING"}, nil, rules)
	if len(issues) != 1 {
		t.Errorf("unknown identifier changed the outcome: %v", issues)
	}
}

func TestDeterministicOutput(t *testing.T) {
	rules := DefaultRules()
	features := []string{
		"FEATURE_YAESU_EMULATION",
		"FEATURE_EASYCOM_EMULATION",
		"FEATURE_MOON_TRACKING",
		"FEATURE_GPS",
	}

	first := EvaluateDependencies(features, nil, rules)
	for run := 0; run < 10; run++ {
		again := EvaluateDependencies(features, nil, rules)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed:\n%v\nvs\n%v", run, first, again)
		}
	}
}
