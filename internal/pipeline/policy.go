package pipeline

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// ErrorPolicy is the reaction to handler failures, evaluated once after all
// handler results of a run are collected.
type ErrorPolicy int

const (
	// PolicyIgnore leaves failures visible only through the result list
	PolicyIgnore ErrorPolicy = iota
	// PolicyLogOnly logs every failed handler
	PolicyLogOnly
	// PolicyFailAggregate turns any failure into a *domain.AggregateFailure
	PolicyFailAggregate
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyLogOnly:
		return "log"
	case PolicyFailAggregate:
		return "fail"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParsePolicy parses "ignore", "log" or "fail".
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore", "none":
		return PolicyIgnore, nil
	case "log", "logonly":
		return PolicyLogOnly, nil
	case "fail", "throw", "strict":
		return PolicyFailAggregate, nil
	default:
		return PolicyIgnore, fmt.Errorf("unknown error policy: %q", s)
	}
}

// Apply evaluates the policy over the ordered results of a run.
func (p ErrorPolicy) Apply(results []domain.HandlerResult, logger *utils.Logger) error {
	failures := domain.Errors(results)
	if len(failures) == 0 {
		return nil
	}

	switch p {
	case PolicyLogOnly:
		if logger != nil {
			for _, f := range failures {
				logger.Error().
					Err(f.Err).
					Str("handler", f.Handler).
					Str("phase", string(f.Phase)).
					Msg("Handler failed")
			}
		}
		return nil
	case PolicyFailAggregate:
		return &domain.AggregateFailure{Failures: failures}
	default:
		return nil
	}
}
