package check

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseRules parses and validates a YAML ruleset document. Any structural
// problem, including an unknown top-level key, is a load-time fault: no
// ruleset is returned and validation can never run against a partially
// loaded model.
func ParseRules(data []byte) (*RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ruleset parse error: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}
	return &rs, nil
}

// LoadRules reads and parses a ruleset document from disk.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}
	rs, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

func (rs *RuleSet) validate() error {
	ids := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("rule missing id")
		}
		if ids[id] {
			return fmt.Errorf("duplicate rule id %q", id)
		}
		ids[id] = true
		return nil
	}

	known := make(map[string]bool, len(rs.KnownFeatures))
	for _, f := range rs.KnownFeatures {
		known[f] = true
	}
	checkKnown := func(ruleID string, features ...string) error {
		if len(known) == 0 {
			return nil
		}
		for _, f := range features {
			if !known[f] {
				return fmt.Errorf("rule %s: feature %q not in known_features", ruleID, f)
			}
		}
		return nil
	}

	for _, r := range rs.MutualExclusivity {
		if err := claim(r.ID); err != nil {
			return err
		}
		if r.Group == "" {
			return fmt.Errorf("rule %s: missing group name", r.ID)
		}
		if len(r.Features) < 2 {
			return fmt.Errorf("rule %s: group %q needs at least two features", r.ID, r.Group)
		}
		if err := noDuplicates(r.ID, r.Features); err != nil {
			return err
		}
		if err := prioritySubset(r.ID, r.Priority, r.Features); err != nil {
			return err
		}
		if err := checkKnown(r.ID, r.Features...); err != nil {
			return err
		}
	}

	for _, r := range rs.Conflicts {
		if err := claim(r.ID); err != nil {
			return err
		}
		if len(r.Between) != 2 {
			return fmt.Errorf("rule %s: conflict needs exactly two features, has %d", r.ID, len(r.Between))
		}
		if r.Between[0] == r.Between[1] {
			return fmt.Errorf("rule %s: conflict of %q with itself", r.ID, r.Between[0])
		}
		if err := prioritySubset(r.ID, r.Priority, r.Between); err != nil {
			return err
		}
		if err := checkKnown(r.ID, r.Between...); err != nil {
			return err
		}
	}

	for _, r := range rs.RequiredDependencies {
		if err := claim(r.ID); err != nil {
			return err
		}
		if r.Feature == "" {
			return fmt.Errorf("rule %s: missing subject feature", r.ID)
		}
		if len(r.Requires) == 0 {
			return fmt.Errorf("rule %s: empty requires list", r.ID)
		}
		for _, req := range r.Requires {
			if req == r.Feature {
				return fmt.Errorf("rule %s: %q requires itself", r.ID, r.Feature)
			}
		}
		switch r.Mode {
		case "", ModeAll, ModeAny:
		default:
			return fmt.Errorf("rule %s: invalid mode %q (want all or any)", r.ID, r.Mode)
		}
		if err := checkKnown(r.ID, append([]string{r.Feature}, r.Requires...)...); err != nil {
			return err
		}
	}

	for _, r := range rs.ConditionalDisables {
		if err := claim(r.ID); err != nil {
			return err
		}
		if r.Feature == "" {
			return fmt.Errorf("rule %s: missing subject feature", r.ID)
		}
		if r.When == nil {
			return fmt.Errorf("rule %s: missing when predicate", r.ID)
		}
		if err := r.When.Validate(); err != nil {
			return fmt.Errorf("rule %s: %w", r.ID, err)
		}
		if err := checkKnown(r.ID, append([]string{r.Feature}, r.When.Features()...)...); err != nil {
			return err
		}
	}

	for _, r := range rs.AutoEnables {
		if err := claim(r.ID); err != nil {
			return err
		}
		if r.Target == "" {
			return fmt.Errorf("rule %s: missing target feature", r.ID)
		}
		if (r.Trigger == "") == (r.When == nil) {
			return fmt.Errorf("rule %s: exactly one of trigger and when must be set", r.ID)
		}
		if r.Trigger == r.Target {
			return fmt.Errorf("rule %s: %q triggers enabling itself", r.ID, r.Target)
		}
		if r.When != nil {
			if err := r.When.Validate(); err != nil {
				return fmt.Errorf("rule %s: %w", r.ID, err)
			}
		}
		refs := []string{r.Target}
		if r.Trigger != "" {
			refs = append(refs, r.Trigger)
		}
		if r.When != nil {
			refs = append(refs, r.When.Features()...)
		}
		if err := checkKnown(r.ID, refs...); err != nil {
			return err
		}
	}

	return nil
}

func noDuplicates(ruleID string, features []string) error {
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if seen[f] {
			return fmt.Errorf("rule %s: duplicate feature %q", ruleID, f)
		}
		seen[f] = true
	}
	return nil
}

// prioritySubset checks a declared priority order covers exactly the
// members it orders.
func prioritySubset(ruleID string, priority, members []string) error {
	if len(priority) == 0 {
		return nil
	}
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	for _, p := range priority {
		if !memberSet[p] {
			return fmt.Errorf("rule %s: priority member %q is not in the group", ruleID, p)
		}
	}
	if err := noDuplicates(ruleID, priority); err != nil {
		return err
	}
	if len(priority) != len(members) {
		return fmt.Errorf("rule %s: priority must order all %d group members, has %d", ruleID, len(members), len(priority))
	}
	return nil
}
