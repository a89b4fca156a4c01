package check

import (
	"fmt"

	"github.com/k3ng-tools/rotorconf-go/pkg/board"
	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// Engine runs both validators over configuration snapshots. All fields
// are read-only after construction; an Engine is safe for concurrent use.
type Engine struct {
	rules  *RuleSet
	reqs   *Requirements
	boards board.Provider
}

// NewEngine creates an engine over a loaded rule model, pin requirement
// table, and board provider.
func NewEngine(rules *RuleSet, reqs *Requirements, boards board.Provider) *Engine {
	return &Engine{rules: rules, reqs: reqs, boards: boards}
}

// Rules returns the engine's rule model.
func (e *Engine) Rules() *RuleSet {
	return e.rules
}

// Requirements returns the engine's pin requirement table.
func (e *Engine) Requirements() *Requirements {
	return e.reqs
}

// Validate checks one snapshot against the selected board. Dependency
// issues come first, then pin issues: dependency problems are usually the
// upstream cause of pin problems (an unneeded feature claiming a pin).
// An unknown board is a fault, not a validation issue.
func (e *Engine) Validate(snap *config.Snapshot, boardID string) (*Result, error) {
	b, err := e.boards.Board(boardID)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	issues := EvaluateDependencies(snap.Features, snap.Options, e.rules)
	issues = append(issues, EvaluatePins(snap.Pins, snap.Active(), e.reqs, b)...)

	return &Result{Issues: issues}, nil
}

// ApplyFixes applies every attached fix in issue order and returns the
// mutated copy; the input snapshot is untouched. A fix whose precondition
// no longer holds (a reassignment target taken by an earlier fix) is
// skipped, never fatal. Enable/disable actions are idempotent. The engine
// does not re-validate or loop: callers re-validate the returned snapshot
// to discover what remains, which avoids oscillation between rules that
// could re-trigger each other.
func (e *Engine) ApplyFixes(snap *config.Snapshot, result *Result) *config.Snapshot {
	fixed := snap.Clone()

	for _, issue := range result.Issues {
		if issue.Fix == nil {
			continue
		}
		if !fixApplicable(issue.Fix, fixed) {
			continue
		}
		for _, a := range issue.Fix.Actions {
			switch a.Op {
			case OpEnableFeature:
				fixed.EnableFeature(a.Feature)
			case OpDisableFeature:
				fixed.DisableFeature(a.Feature)
			case OpReassignPin:
				fixed.AssignPin(a.Role, a.Pin)
			}
		}
	}

	return fixed
}

// fixApplicable reports whether a fix's preconditions still hold against
// the partially fixed snapshot.
func fixApplicable(f *Fix, snap *config.Snapshot) bool {
	active := snap.Active()
	for _, a := range f.Actions {
		switch a.Op {
		case OpDisableFeature:
			// Already disabled by an earlier fix: nothing left to do.
			if !active[a.Feature] {
				return false
			}
		case OpReassignPin:
			// The proposed pin must still be free.
			for role, pin := range snap.Pins {
				if role != a.Role && pin == a.Pin {
					return false
				}
			}
		}
	}
	return true
}
