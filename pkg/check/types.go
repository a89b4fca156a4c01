package check

import (
	"fmt"
	"strings"

	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// Severity is the severity level of a validation issue.
type Severity int

const (
	// SeverityError marks an invalid configuration that must not be
	// exported or compiled.
	SeverityError Severity = iota
	// SeverityWarning marks a risky but usable configuration.
	SeverityWarning
	// SeverityInfo marks an optimization suggestion. Info issues do not
	// affect the pass/fail outcome.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Category identifies which check produced an issue.
type Category string

const (
	CategoryMutualExclusivity  Category = "mutual_exclusivity"
	CategoryConflict           Category = "conflict"
	CategoryRequiredDependency Category = "required_dependency"
	CategoryConditionalDisable Category = "conditional_disable"
	CategoryAutoEnable         Category = "auto_enable"
	CategoryPinCapability      Category = "pin_capability"
	CategoryPinRange           Category = "pin_range"
	CategoryPinCollision       Category = "pin_collision"
	CategoryReservedPin        Category = "reserved_pin"
)

// ActionOp is the kind of an atomic fix mutation.
type ActionOp int

const (
	// OpEnableFeature activates a feature or option.
	OpEnableFeature ActionOp = iota
	// OpDisableFeature deactivates a feature or option.
	OpDisableFeature
	// OpReassignPin moves a pin role to a different physical pin.
	OpReassignPin
)

func (op ActionOp) String() string {
	switch op {
	case OpEnableFeature:
		return "enable"
	case OpDisableFeature:
		return "disable"
	case OpReassignPin:
		return "reassign"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// Action is one atomic mutation of a configuration snapshot.
type Action struct {
	Op      ActionOp
	Feature string     // for enable/disable
	Role    string     // for reassign
	Pin     config.Pin // for reassign: the new pin
}

func (a Action) String() string {
	if a.Op == OpReassignPin {
		return fmt.Sprintf("reassign %s to pin %s", a.Role, a.Pin)
	}
	return fmt.Sprintf("%s %s", a.Op, a.Feature)
}

// Fix is an unambiguous set of mutations that resolves one issue.
type Fix struct {
	Actions []Action
}

// Issue is one validation finding.
type Issue struct {
	// Severity is error, warning, or info.
	Severity Severity
	// Category names the check that produced the issue.
	Category Category
	// RuleID is the identifier of the violated rule, or "" for pin
	// checks that have no declared rule.
	RuleID string
	// Message describes the problem.
	Message string
	// Features lists the feature/option identifiers implicated.
	Features []string
	// Roles lists the pin-role identifiers implicated.
	Roles []string
	// Suggestion is a textual hint shown when no Fix is attached, or to
	// supplement one.
	Suggestion string
	// Fix, when non-nil, resolves this issue mechanically.
	Fix *Fix
}

func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s: %s", i.Severity, i.Category, i.Message))
	if len(i.Features) > 0 {
		sb.WriteString(fmt.Sprintf(" (features: %s)", strings.Join(i.Features, ", ")))
	}
	if len(i.Roles) > 0 {
		sb.WriteString(fmt.Sprintf(" (roles: %s)", strings.Join(i.Roles, ", ")))
	}
	if i.Suggestion != "" {
		sb.WriteString(" -> " + i.Suggestion)
	}
	return sb.String()
}

// Result is the outcome of validating one snapshot.
type Result struct {
	// Issues in deterministic order: dependency findings first, then pin
	// findings, each in category order.
	Issues []Issue
}

// Passed reports whether the configuration is valid: no error-severity
// issue exists. Warnings and suggestions do not fail a configuration.
func (r *Result) Passed() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns the error-severity issues.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity issues.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Infos returns the info-severity issues.
func (r *Result) Infos() []Issue {
	return r.filter(SeverityInfo)
}

func (r *Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Fixes returns the issues that carry an attached fix, in issue order.
func (r *Result) Fixes() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Fix != nil {
			out = append(out, i)
		}
	}
	return out
}
