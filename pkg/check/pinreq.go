package check

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/k3ng-tools/rotorconf-go/pkg/board"
)

// Requirement declares what a pin role needs from its physical pin.
type Requirement struct {
	// Role is the pin-role identifier (e.g., "azimuth_speed_voltage").
	Role string `yaml:"role"`
	// Capability is the required capability class, or "" when any
	// non-reserved pin is acceptable.
	Capability board.Capability `yaml:"capability,omitempty"`
	// Feature is the owning feature; the requirement (and the role's
	// participation in collision grouping) only applies while it is
	// active. Empty means the role is always relevant.
	Feature string `yaml:"feature,omitempty"`
	// Owns names a reservation the role legitimately occupies
	// ("i2c", "serial-rx"). Assignments to pins reserved for that
	// peripheral are not flagged.
	Owns string `yaml:"owns,omitempty"`
	// Description is shown by explain output.
	Description string `yaml:"description,omitempty"`
}

// Requirements is the immutable role requirement table.
type Requirements struct {
	byRole map[string]Requirement
	order  []string
}

// NewRequirements builds a table from a requirement list. Duplicate roles
// are a fault.
func NewRequirements(reqs []Requirement) (*Requirements, error) {
	r := &Requirements{byRole: make(map[string]Requirement, len(reqs))}
	for _, req := range reqs {
		if req.Role == "" {
			return nil, fmt.Errorf("pin requirement missing role")
		}
		if _, dup := r.byRole[req.Role]; dup {
			return nil, fmt.Errorf("duplicate pin requirement for role %q", req.Role)
		}
		if req.Capability != "" {
			if _, err := board.ParseCapability(string(req.Capability)); err != nil {
				return nil, fmt.Errorf("role %s: %w", req.Role, err)
			}
		}
		r.byRole[req.Role] = req
		r.order = append(r.order, req.Role)
	}
	return r, nil
}

// Lookup returns the requirement for a role.
func (r *Requirements) Lookup(role string) (Requirement, bool) {
	req, ok := r.byRole[role]
	return req, ok
}

// Roles returns the declared role order.
func (r *Requirements) Roles() []string {
	return r.order
}

// RoleActive reports whether a role belongs to an active feature. Roles
// without a declared owning feature (or without any requirement entry)
// count as active: nothing excuses them as conditionally compiled.
func (r *Requirements) RoleActive(role string, active map[string]bool) bool {
	req, ok := r.byRole[role]
	if !ok || req.Feature == "" {
		return true
	}
	return active[req.Feature]
}

// Explain describes the requirement on a role for display.
func (r *Requirements) Explain(role string) string {
	req, ok := r.byRole[role]
	if !ok {
		return fmt.Sprintf("%s: no declared requirement, any non-reserved pin is acceptable", role)
	}
	s := role + ":"
	if req.Capability != "" {
		s += fmt.Sprintf(" requires a %s-capable pin", req.Capability)
	} else {
		s += " accepts any non-reserved pin"
	}
	if req.Feature != "" {
		s += fmt.Sprintf(", used by %s", req.Feature)
	}
	if req.Description != "" {
		s += " (" + req.Description + ")"
	}
	return s
}

// yamlRequirements is the on-disk requirement document structure.
type yamlRequirements struct {
	Requirements []Requirement `yaml:"requirements"`
}

// ParseRequirements parses a YAML pin requirement document.
func ParseRequirements(data []byte) (*Requirements, error) {
	var y yamlRequirements
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("pin requirements parse error: %w", err)
	}
	return NewRequirements(y.Requirements)
}

// LoadRequirements reads and parses a pin requirement document from disk.
func LoadRequirements(path string) (*Requirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pin requirements: %w", err)
	}
	r, err := ParseRequirements(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
