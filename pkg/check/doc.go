// Package check validates a rotator configuration snapshot against a
// declarative ruleset and a board capability table.
//
// The engine answers one question: is this combination of features,
// options, and pin assignments coherent for the selected board? Invalid
// configurations are reported as data ([Issue] values inside a [Result]),
// never as Go errors. Go errors are reserved for faults: malformed rule or
// board documents and unknown board identifiers.
//
// # Rule model
//
// Rules are pure data loaded once from a YAML document (see [LoadRules])
// and immutable afterwards. Five variants exist:
//
//   - mutual exclusivity groups (at most one member active, optionally
//     exactly one)
//   - pairwise conflicts
//   - required dependencies (all-of or any-of)
//   - conditional disable (a feature may only stay active while a
//     predicate over the active set holds)
//   - auto-enable suggestions (when a trigger holds, a target feature
//     should be enabled)
//
// Predicates are small boolean expression trees (all/any/not over
// feature-active leaves), so the whole ruleset stays serializable.
//
// # Evaluation order
//
// Validate evaluates rules in a fixed order: mutual exclusivity, conflicts,
// required dependencies, conditional disable, auto-enable, then the pin
// checks (capability, collision, reservation). Within each category rules
// run in declared order. Repeated runs against unchanged input produce
// identical results, which makes fix application reproducible.
//
// # Auto-fixes
//
// An issue carries a [Fix] only when exactly one action set restores
// validity. Ambiguous situations (disable one of A or B, unspecified
// which) are reported with a textual suggestion instead. [Engine.ApplyFixes]
// applies attached fixes in issue order on a copy of the snapshot,
// skipping a fix whose precondition no longer holds; callers re-validate
// afterwards.
//
// # Concurrency
//
// An [Engine] holds only read-only state after construction. Independent
// snapshots may be validated concurrently without synchronization.
package check
