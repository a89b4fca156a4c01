package check

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Predicate is a boolean expression over the active feature/option set.
// Exactly one field must be set. Predicates stay serializable so the whole
// ruleset can live in a YAML document.
//
// In YAML a bare string is shorthand for an active-leaf:
//
//	when: FEATURE_ELEVATION_CONTROL
//
// is equivalent to
//
//	when:
//	  active: FEATURE_ELEVATION_CONTROL
type Predicate struct {
	// Active is true when the named feature/option is active.
	Active string `yaml:"active,omitempty"`
	// Inactive is true when the named feature/option is not active.
	Inactive string `yaml:"inactive,omitempty"`
	// All is true when every child predicate is true.
	All []*Predicate `yaml:"all,omitempty"`
	// Any is true when at least one child predicate is true.
	Any []*Predicate `yaml:"any,omitempty"`
	// Not negates its child.
	Not *Predicate `yaml:"not,omitempty"`
}

// Eval evaluates the predicate against the active identifier set.
func (p *Predicate) Eval(active map[string]bool) bool {
	switch {
	case p.Active != "":
		return active[p.Active]
	case p.Inactive != "":
		return !active[p.Inactive]
	case p.Not != nil:
		return !p.Not.Eval(active)
	case len(p.All) > 0:
		for _, c := range p.All {
			if !c.Eval(active) {
				return false
			}
		}
		return true
	case len(p.Any) > 0:
		for _, c := range p.Any {
			if c.Eval(active) {
				return true
			}
		}
		return false
	default:
		// An empty predicate is malformed; Validate rejects it at load
		// time. Treat as false so it can never satisfy anything.
		return false
	}
}

// Validate checks that exactly one branch is populated, recursively.
func (p *Predicate) Validate() error {
	set := 0
	if p.Active != "" {
		set++
	}
	if p.Inactive != "" {
		set++
	}
	if len(p.All) > 0 {
		set++
	}
	if len(p.Any) > 0 {
		set++
	}
	if p.Not != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("predicate must have exactly one of active/inactive/all/any/not, has %d", set)
	}

	for _, c := range p.All {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range p.Any {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if p.Not != nil {
		return p.Not.Validate()
	}
	return nil
}

// Features returns every feature/option identifier referenced by the
// predicate, in expression order.
func (p *Predicate) Features() []string {
	var ids []string
	switch {
	case p.Active != "":
		ids = append(ids, p.Active)
	case p.Inactive != "":
		ids = append(ids, p.Inactive)
	case p.Not != nil:
		ids = append(ids, p.Not.Features()...)
	default:
		for _, c := range p.All {
			ids = append(ids, c.Features()...)
		}
		for _, c := range p.Any {
			ids = append(ids, c.Features()...)
		}
	}
	return ids
}

func (p *Predicate) String() string {
	switch {
	case p.Active != "":
		return p.Active
	case p.Inactive != "":
		return "!" + p.Inactive
	case p.Not != nil:
		return "!(" + p.Not.String() + ")"
	case len(p.All) > 0:
		return joinPredicates(p.All, " and ")
	case len(p.Any) > 0:
		return joinPredicates(p.Any, " or ")
	default:
		return "<empty>"
	}
}

func joinPredicates(ps []*Predicate, sep string) string {
	s := "("
	for i, c := range ps {
		if i > 0 {
			s += sep
		}
		s += c.String()
	}
	return s + ")"
}

// UnmarshalYAML accepts either the mapping form or the bare-string
// shorthand for an active-leaf.
func (p *Predicate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var id string
		if err := node.Decode(&id); err != nil {
			return err
		}
		*p = Predicate{Active: id}
		return nil
	}

	type plain Predicate
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = Predicate(raw)
	return nil
}
