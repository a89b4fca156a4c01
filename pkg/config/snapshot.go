// Package config holds the in-memory rotator configuration model: the
// active feature and option sets, the pin-role assignments, and the raw
// settings table, plus YAML load/save for configuration documents.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is one complete configuration under validation. Snapshots are
// plain data; the validation engine never mutates the snapshot it is given
// (fix application works on a clone).
type Snapshot struct {
	// Board is the selected target board identifier
	// (e.g., "arduino_mega_2560"). May be empty when the caller supplies
	// the board out of band.
	Board string `yaml:"board,omitempty"`

	// Features lists active FEATURE_* identifiers in document order.
	Features []string `yaml:"features,omitempty"`

	// Options lists active OPTION_* identifiers in document order.
	// Options toggle minor behaviors but are validated exactly like
	// features.
	Options []string `yaml:"options,omitempty"`

	// Pins maps pin-role identifiers to physical pin descriptors.
	Pins map[string]Pin `yaml:"pins,omitempty"`

	// Settings holds numeric/string settings. They are carried through
	// verbatim; this engine does not validate them.
	Settings map[string]any `yaml:"settings,omitempty"`
}

// New returns an empty snapshot with initialized maps.
func New() *Snapshot {
	return &Snapshot{
		Pins:     make(map[string]Pin),
		Settings: make(map[string]any),
	}
}

// HasFeature reports whether the feature is active.
func (s *Snapshot) HasFeature(id string) bool {
	for _, f := range s.Features {
		if f == id {
			return true
		}
	}
	return false
}

// HasOption reports whether the option is active.
func (s *Snapshot) HasOption(id string) bool {
	for _, o := range s.Options {
		if o == id {
			return true
		}
	}
	return false
}

// Active returns the union of active features and options as a lookup set.
func (s *Snapshot) Active() map[string]bool {
	active := make(map[string]bool, len(s.Features)+len(s.Options))
	for _, f := range s.Features {
		active[f] = true
	}
	for _, o := range s.Options {
		active[o] = true
	}
	return active
}

// EnableFeature activates a feature. Enabling an already-active feature is
// a no-op, which keeps fix application idempotent. Identifiers with an
// OPTION_ prefix land in the options set.
func (s *Snapshot) EnableFeature(id string) {
	if strings.HasPrefix(id, "OPTION_") {
		if !s.HasOption(id) {
			s.Options = append(s.Options, id)
		}
		return
	}
	if !s.HasFeature(id) {
		s.Features = append(s.Features, id)
	}
}

// DisableFeature deactivates a feature or option. Disabling an inactive
// identifier is a no-op.
func (s *Snapshot) DisableFeature(id string) {
	s.Features = removeString(s.Features, id)
	s.Options = removeString(s.Options, id)
}

func removeString(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// AssignPin sets the physical pin for a role.
func (s *Snapshot) AssignPin(role string, pin Pin) {
	if s.Pins == nil {
		s.Pins = make(map[string]Pin)
	}
	s.Pins[role] = pin
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Board:    s.Board,
		Features: append([]string(nil), s.Features...),
		Options:  append([]string(nil), s.Options...),
		Pins:     make(map[string]Pin, len(s.Pins)),
		Settings: make(map[string]any, len(s.Settings)),
	}
	for role, pin := range s.Pins {
		c.Pins[role] = pin
	}
	for name, val := range s.Settings {
		c.Settings[name] = val
	}
	return c
}

// AssignedRoles returns the roles with a non-disabled pin, sorted for
// deterministic iteration.
func (s *Snapshot) AssignedRoles() []string {
	roles := make([]string, 0, len(s.Pins))
	for role, pin := range s.Pins {
		if !pin.IsDisabled() {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles
}

// Parse parses a YAML configuration document.
func Parse(data []byte) (*Snapshot, error) {
	s := New()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("configuration parse error: %w", err)
	}
	return s, nil
}

// Load reads and parses a configuration document from disk.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Marshal serializes the snapshot back to its YAML document form.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Save writes the snapshot to disk as YAML.
func (s *Snapshot) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}
