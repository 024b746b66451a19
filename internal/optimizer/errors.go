package optimizer

import (
	"fmt"
	"strings"
)

// NoEligiblePlayersError means pre-filtering removed the entire pool.
type NoEligiblePlayersError struct{}

func (*NoEligiblePlayersError) Error() string {
	return "no eligible players available for optimization"
}

// MustIncludeNotFoundError means a requested name matched no eligible
// player. Suggestions carry close names from the eligible pool, when any.
type MustIncludeNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *MustIncludeNotFoundError) Error() string {
	msg := fmt.Sprintf("must-include player not found or not eligible: %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (close matches: %s)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// InfeasibleOptimizationError means no selection satisfies every hard
// constraint.
type InfeasibleOptimizationError struct {
	Reason string
}

func (e *InfeasibleOptimizationError) Error() string {
	if e.Reason != "" {
		return "optimization infeasible: " + e.Reason
	}
	return "optimization infeasible: no selection satisfies all constraints"
}

// UnexpectedSelectionCountError reports a post-solve selection whose
// cardinality is not 15.
type UnexpectedSelectionCountError struct {
	Count int
}

func (e *UnexpectedSelectionCountError) Error() string {
	return fmt.Sprintf("optimization returned %d players, expected 15", e.Count)
}
