package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/k3ng-tools/rotorconf-go/pkg/board"
	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// EvaluatePins runs the physical pin checks: capability requirements,
// collisions, and reserved-pin usage. All three run unconditionally.
// Roles are visited in sorted order so output is deterministic.
func EvaluatePins(pins map[string]config.Pin, active map[string]bool, reqs *Requirements, b *board.Board) []Issue {
	var issues []Issue

	assigned := assignedRoles(pins)

	issues = append(issues, checkCapabilities(pins, assigned, active, reqs, b)...)
	issues = append(issues, checkCollisions(pins, assigned, active, reqs)...)
	issues = append(issues, checkReservations(pins, assigned, reqs, b)...)

	return issues
}

func assignedRoles(pins map[string]config.Pin) []string {
	roles := make([]string, 0, len(pins))
	for role, pin := range pins {
		if !pin.IsDisabled() {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles
}

// checkCapabilities verifies that every assigned role with a declared
// requirement sits on a pin supporting the required capability class.
// Only roles belonging to an active feature are checked; an
// assigned-but-inactive role is fine, since conditional compilation may
// never reference it. Remote pins are skipped: the secondary unit's
// capabilities are not known here.
func checkCapabilities(pins map[string]config.Pin, assigned []string, active map[string]bool, reqs *Requirements, b *board.Board) []Issue {
	var issues []Issue

	for _, role := range assigned {
		pin := pins[role]
		if pin.Kind == config.PinRemote {
			continue
		}
		if !reqs.RoleActive(role, active) {
			continue
		}

		if !b.HasPin(pin) {
			suggestion := fmt.Sprintf("%s has digital pins 0-%d", b.Name, b.DigitalPins-1)
			if b.AnalogPins > 0 {
				suggestion += fmt.Sprintf(" and analog pins A0-A%d", b.AnalogPins-1)
			}
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Category:   CategoryPinRange,
				Message:    fmt.Sprintf("pin %s assigned to %s does not exist on %s", pin, role, b.Name),
				Roles:      []string{role},
				Suggestion: suggestion,
			})
			continue
		}

		req, ok := reqs.Lookup(role)
		if !ok || req.Capability == "" {
			continue
		}
		if b.HasCapability(pin, req.Capability) {
			continue
		}

		issue := Issue{
			Severity: SeverityError,
			Category: CategoryPinCapability,
			Message: fmt.Sprintf("%s requires a %s-capable pin, but pin %s supports only %s",
				role, req.Capability, pin, capabilityList(b.Capabilities(pin))),
			Roles: []string{role},
		}

		free := freePins(b.PinsWithCapability(req.Capability), pins)
		if len(free) > 0 {
			// Lowest-numbered free pin; a single candidate keeps the
			// fix deterministic.
			issue.Fix = &Fix{Actions: []Action{{Op: OpReassignPin, Role: role, Pin: free[0]}}}
			issue.Suggestion = fmt.Sprintf("reassign %s to pin %s (free %s pins: %s)",
				role, free[0], req.Capability, pinList(free))
		} else {
			issue.Suggestion = fmt.Sprintf("no free %s-capable pin available on %s; free one manually",
				req.Capability, b.Name)
		}
		issues = append(issues, issue)
	}

	return issues
}

// checkCollisions groups role assignments by physical pin and reports
// every pin claimed by more than one active-feature role. Roles belonging
// only to inactive features are excluded: conditionally compiled feature
// sets commonly reuse a pin number because only one can be active at a
// time. A genuine collision has no safe automatic fix (which role should
// yield is ambiguous), so none is attached.
func checkCollisions(pins map[string]config.Pin, assigned []string, active map[string]bool, reqs *Requirements) []Issue {
	byPin := make(map[string][]string)
	for _, role := range assigned {
		if !reqs.RoleActive(role, active) {
			continue
		}
		key := pins[role].String()
		byPin[key] = append(byPin[key], role)
	}

	keys := make([]string, 0, len(byPin))
	for key, roles := range byPin {
		if len(roles) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var issues []Issue
	for _, key := range keys {
		roles := byPin[key] // already sorted: assigned is sorted
		issues = append(issues, Issue{
			Severity:   SeverityError,
			Category:   CategoryPinCollision,
			Message:    fmt.Sprintf("pin %s is assigned to multiple roles: %s", key, strings.Join(roles, ", ")),
			Roles:      roles,
			Suggestion: fmt.Sprintf("move all but one of %s to different pins", strings.Join(roles, ", ")),
		})
	}
	return issues
}

// checkReservations warns about assignments to pins a fixed peripheral
// reserves, unless the role declares ownership of that reservation.
// Warnings only: some reservations are advisory.
func checkReservations(pins map[string]config.Pin, assigned []string, reqs *Requirements, b *board.Board) []Issue {
	var issues []Issue

	for _, role := range assigned {
		pin := pins[role]
		tag := b.Reservation(pin)
		if tag == "" {
			continue
		}
		if req, ok := reqs.Lookup(role); ok && req.Owns != "" {
			if req.Owns == tag || req.Owns == board.ReservationBus(tag) {
				continue
			}
		}
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Category:   CategoryReservedPin,
			Message:    fmt.Sprintf("pin %s assigned to %s is reserved (%s)", pin, role, tag),
			Roles:      []string{role},
			Suggestion: fmt.Sprintf("move %s off the %s pin unless the peripheral is unused", role, board.ReservationBus(tag)),
		})
	}
	return issues
}

// freePins filters candidates down to pins not assigned to any role.
// Candidate lists already exclude reserved pins.
func freePins(candidates []config.Pin, pins map[string]config.Pin) []config.Pin {
	used := make(map[string]bool, len(pins))
	for _, p := range pins {
		if !p.IsDisabled() {
			used[p.String()] = true
		}
	}
	var free []config.Pin
	for _, c := range candidates {
		if !used[c.String()] {
			free = append(free, c)
		}
	}
	return free
}

func capabilityList(caps []board.Capability) string {
	parts := make([]string, len(caps))
	for i, c := range caps {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func pinList(pins []config.Pin) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
