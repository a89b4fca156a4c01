package check

// DependencyMode selects how a required-dependency rule is satisfied.
type DependencyMode string

const (
	// ModeAll requires every listed feature to be active.
	ModeAll DependencyMode = "all"
	// ModeAny requires at least one listed feature to be active.
	ModeAny DependencyMode = "any"
)

// MutualExclusivityRule limits how many members of a feature group may be
// active at once.
type MutualExclusivityRule struct {
	// ID is the unique rule identifier.
	ID string `yaml:"id"`
	// Group names the feature group (e.g., "protocol").
	Group string `yaml:"group"`
	// Features lists the group members in declared order.
	Features []string `yaml:"features"`
	// ExactlyOne requires exactly one member active instead of at most
	// one.
	ExactlyOne bool `yaml:"exactly_one,omitempty"`
	// Priority, when declared, orders members for automatic conflict
	// resolution: a two-member violation is fixed by keeping the member
	// that appears first here. Without a priority order the fix is
	// ambiguous and only a textual suggestion is reported.
	Priority []string `yaml:"priority,omitempty"`
	// Message is the human-readable error text. Empty means a default
	// message is generated.
	Message string `yaml:"message,omitempty"`
}

// ConflictRule marks two features as mutually incompatible. Conflicts are
// kept distinct from exclusivity groups because they usually cross
// categories that are not otherwise grouped.
type ConflictRule struct {
	ID string `yaml:"id"`
	// Between holds exactly the two conflicting feature identifiers.
	Between []string `yaml:"between"`
	// Priority, when declared, selects which side survives an automatic
	// fix (the first listed member is kept).
	Priority []string `yaml:"priority,omitempty"`
	Message  string   `yaml:"message,omitempty"`
}

// RequiredDependencyRule requires other features whenever its subject is
// active.
type RequiredDependencyRule struct {
	ID string `yaml:"id"`
	// Feature is the subject; the rule only applies while it is active.
	Feature string `yaml:"feature"`
	// Requires lists the needed features in declared order. In any-mode
	// the first listed member is the one an automatic fix enables.
	Requires []string `yaml:"requires"`
	// Mode is all (default) or any.
	Mode    DependencyMode `yaml:"mode,omitempty"`
	Message string         `yaml:"message,omitempty"`
}

// ConditionalDisableRule forbids a feature from staying active outside a
// required context.
type ConditionalDisableRule struct {
	ID      string `yaml:"id"`
	Feature string `yaml:"feature"`
	// When is the required context. While it evaluates false, the
	// feature must not remain active.
	When    *Predicate `yaml:"when"`
	Message string     `yaml:"message,omitempty"`
}

// AutoEnableRule suggests enabling a target feature when a trigger holds.
// These are optimization suggestions, not errors, unless marked mandatory.
type AutoEnableRule struct {
	ID string `yaml:"id"`
	// Trigger is a single feature identifier; the rule fires while it is
	// active. Exactly one of Trigger and When must be set.
	Trigger string `yaml:"trigger,omitempty"`
	// When is a predicate trigger for conditions a single feature cannot
	// express.
	When *Predicate `yaml:"when,omitempty"`
	// Target is the feature to enable.
	Target string `yaml:"target"`
	// Mandatory raises the severity from info to error.
	Mandatory bool   `yaml:"mandatory,omitempty"`
	Message   string `yaml:"message,omitempty"`
}

// RuleSet is the immutable rule model. The slice order within each
// category is the declared order and fixes evaluation order.
type RuleSet struct {
	MutualExclusivity    []MutualExclusivityRule  `yaml:"mutual_exclusivity,omitempty"`
	Conflicts            []ConflictRule           `yaml:"conflicts,omitempty"`
	RequiredDependencies []RequiredDependencyRule `yaml:"required_dependencies,omitempty"`
	ConditionalDisables  []ConditionalDisableRule `yaml:"conditional_disables,omitempty"`
	AutoEnables          []AutoEnableRule         `yaml:"auto_enables,omitempty"`

	// KnownFeatures, when declared, is the identifier universe: every
	// feature a rule references must be listed here. An empty list
	// disables the universe check.
	KnownFeatures []string `yaml:"known_features,omitempty"`
}

// RuleCount returns the total number of rules across all categories.
func (rs *RuleSet) RuleCount() int {
	return len(rs.MutualExclusivity) + len(rs.Conflicts) +
		len(rs.RequiredDependencies) + len(rs.ConditionalDisables) +
		len(rs.AutoEnables)
}

// FeatureInfo describes everything the ruleset says about one feature.
type FeatureInfo struct {
	Feature       string
	Requires      []string
	RequiresAny   []string
	ConflictsWith []string
	AutoEnables   []string
	Groups        []string
}

// ExplainFeature collects the rules touching a feature identifier.
func (rs *RuleSet) ExplainFeature(id string) FeatureInfo {
	info := FeatureInfo{Feature: id}

	for _, r := range rs.MutualExclusivity {
		for _, f := range r.Features {
			if f == id {
				info.Groups = append(info.Groups, r.Group)
				break
			}
		}
	}
	for _, r := range rs.Conflicts {
		if len(r.Between) == 2 {
			if r.Between[0] == id {
				info.ConflictsWith = append(info.ConflictsWith, r.Between[1])
			} else if r.Between[1] == id {
				info.ConflictsWith = append(info.ConflictsWith, r.Between[0])
			}
		}
	}
	for _, r := range rs.RequiredDependencies {
		if r.Feature != id {
			continue
		}
		if r.Mode == ModeAny {
			info.RequiresAny = append(info.RequiresAny, r.Requires...)
		} else {
			info.Requires = append(info.Requires, r.Requires...)
		}
	}
	for _, r := range rs.AutoEnables {
		if r.Trigger == id {
			info.AutoEnables = append(info.AutoEnables, r.Target)
		}
	}
	return info
}
