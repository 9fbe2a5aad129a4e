package types

import "fmt"

// OverflowPolicy decides what happens when a single line alone exceeds a
// freshly started fragment's entire budget
type OverflowPolicy string

const (
	// OverflowAllow emits the oversized line as a flagged over-budget chunk
	// and records a diagnostic
	OverflowAllow OverflowPolicy = "allow"
	// OverflowReject aborts chunking with an error instead of producing an
	// over-budget chunk
	OverflowReject OverflowPolicy = "reject"
)

// Limits holds the four reservation constants that derive the per-position
// character budget. All values are character counts, supplied per invocation
// and never persisted.
type Limits struct {
	// MaxContextChars is the generation service's total context window
	MaxContextChars int
	// ReservedResponseChars is held back for the service's response
	ReservedResponseChars int
	// ReservedPromptChars is held back for fixed prompt overhead
	ReservedPromptChars int
	// ReservedCarryChars is held back, for every chunk after the first, for
	// the caller-produced summary of prior chunks
	ReservedCarryChars int

	// Overflow selects the single-line overflow policy. Empty means OverflowAllow.
	Overflow OverflowPolicy
}

// BudgetForPosition returns the character budget for the chunk at the given
// sequence position. Position 0 gets the full window minus response and
// prompt reservations; every later position additionally reserves room for
// the carried context.
func (l Limits) BudgetForPosition(index int) int {
	budget := l.MaxContextChars - l.ReservedResponseChars - l.ReservedPromptChars
	if index > 0 {
		budget -= l.ReservedCarryChars
	}
	return budget
}

// Validate rejects misconfigured limits before any chunking is attempted.
// A non-positive budget at any position is fatal: chunking must not produce
// degenerate output.
func (l Limits) Validate() error {
	if l.MaxContextChars <= 0 {
		return fmt.Errorf("max context chars must be positive, got %d", l.MaxContextChars)
	}
	if l.ReservedResponseChars < 0 || l.ReservedPromptChars < 0 || l.ReservedCarryChars < 0 {
		return fmt.Errorf("reservations must be non-negative")
	}
	if b := l.BudgetForPosition(0); b <= 0 {
		return fmt.Errorf("budget for position 0 is non-positive (%d): reservations exhaust the context window", b)
	}
	if b := l.BudgetForPosition(1); b <= 0 {
		return fmt.Errorf("budget for position 1 is non-positive (%d): carried-context reservation exhausts the context window", b)
	}
	switch l.Overflow {
	case "", OverflowAllow, OverflowReject:
	default:
		return fmt.Errorf("invalid overflow policy %q", l.Overflow)
	}
	return nil
}

// Policy returns the effective overflow policy, defaulting to OverflowAllow
func (l Limits) Policy() OverflowPolicy {
	if l.Overflow == "" {
		return OverflowAllow
	}
	return l.Overflow
}
