package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

// Edit mutates a working copy of the draft. Edits passed to Apply together
// either all land or none do.
type Edit func(e *editor) error

type editor struct {
	draft   *Draft
	catalog *catalog.Catalog
}

// EditOrigin sets the pickup location.
func EditOrigin(origin string) Edit {
	return func(e *editor) error {
		e.draft.Origin = strings.TrimSpace(origin)
		return nil
	}
}

// EditDestination sets the destination.
func EditDestination(dest string) Edit {
	return func(e *editor) error {
		e.draft.Destination = strings.TrimSpace(dest)
		return nil
	}
}

// EditScenario selects a scenario; an empty id clears it.
func EditScenario(id string) Edit {
	return func(e *editor) error {
		id = strings.TrimSpace(id)
		if id != "" {
			if _, ok := e.catalog.Scenario(id); !ok {
				return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown scenario %q", id), nil)
			}
		}
		e.draft.ScenarioID = id
		return nil
	}
}

// EditTier selects a tier; an empty id clears it. The id must come from the
// catalog the configurator was built with.
func EditTier(id catalog.TierID) Edit {
	return func(e *editor) error {
		if id != "" {
			e.catalog.MustTier(id)
		}
		e.draft.TierID = id
		return nil
	}
}

// EditTiming sets the start choice. at is required for TimingScheduled and
// ignored otherwise.
func EditTiming(choice TimingChoice, at time.Time) Edit {
	return func(e *editor) error {
		if choice != TimingUnset && !choice.Valid() {
			return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown timing %q", choice), nil)
		}
		if choice == TimingScheduled {
			if at.IsZero() {
				return apperrors.Wrap(apperrors.CodeInvalidInput, "scheduled timing requires a date-time", nil)
			}
			at = at.UTC()
			e.draft.ScheduledAt = &at
		} else {
			e.draft.ScheduledAt = nil
		}
		e.draft.Timing = choice
		return nil
	}
}

// EditTerm toggles a single acknowledgement.
func EditTerm(key string, accepted bool) Edit {
	return func(e *editor) error {
		for i := range e.draft.Terms {
			if e.draft.Terms[i].Key == key {
				e.draft.Terms[i].Accepted = accepted
				return nil
			}
		}
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown term %q", key), nil)
	}
}

// EditAllTerms sets every acknowledgement at once.
func EditAllTerms(accepted bool) Edit {
	return func(e *editor) error {
		for i := range e.draft.Terms {
			e.draft.Terms[i].Accepted = accepted
		}
		return nil
	}
}

// EditDiscountEligibility records the externally computed reward eligibility.
func EditDiscountEligibility(eligible bool) Edit {
	return func(e *editor) error {
		e.draft.DiscountEligible = eligible
		return nil
	}
}
