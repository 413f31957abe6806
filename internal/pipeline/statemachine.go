package pipeline

import (
	"fmt"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

var allowedTransitions = map[domain.RunState][]domain.RunState{
	domain.StateConfigured:            {domain.StateRunningInputHandlers},
	domain.StateRunningInputHandlers:  {domain.StateBuilding},
	domain.StateBuilding:              {domain.StateResolvingManifest, domain.StateFailed},
	domain.StateResolvingManifest:     {domain.StateRunningOutputHandlers, domain.StateFailed},
	domain.StateRunningOutputHandlers: {domain.StateAggregating},
	domain.StateAggregating:           {domain.StateSucceeded, domain.StateFailed},
}

// isAllowedTransition reports whether the run may move from one state to another.
func isAllowedTransition(from, to domain.RunState) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// advance moves the outcome to the next state, recording the transition.
func advance(o *domain.PublishOutcome, to domain.RunState) error {
	if !isAllowedTransition(o.State, to) {
		return fmt.Errorf("disallowed run transition: %s -> %s", o.State, to)
	}
	o.State = to
	o.Transitions = append(o.Transitions, to)
	return nil
}
