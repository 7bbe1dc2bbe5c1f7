package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/tripwizard/pkg/domain"
)

var budgetOptions = []string{
	"low: hostels, street food, public transport",
	"medium: comfortable hotels and restaurants",
	"high: premium stays and experiences",
}

// AskTrip collects a TripRequest through p. Fields of prev, when set, are
// offered as defaults so an edited trip starts from the last submission.
func AskTrip(ctx context.Context, p Prompter, prev *domain.TripRequest, today domain.Date) (domain.TripRequest, error) {
	var req domain.TripRequest
	if prev != nil {
		req = prev.Clone()
	}

	dest, err := p.Input(ctx, InputConfig{
		Message:   "Where do you want to go?",
		Default:   req.Destination,
		Help:      "A city or region, e.g. Paris or the Amalfi Coast.",
		Validator: required("destination"),
	})
	if err != nil {
		return domain.TripRequest{}, err
	}
	req.Destination = strings.TrimSpace(dest)

	startDefault := today.AddDays(14)
	if !req.StartDate.IsZero() {
		startDefault = req.StartDate
	}
	start, err := askDate(ctx, p, "Start date (YYYY-MM-DD):", startDefault, func(domain.Date) error { return nil })
	if err != nil {
		return domain.TripRequest{}, err
	}
	req.StartDate = start

	endDefault := start.AddDays(6)
	if !req.EndDate.IsZero() && !req.EndDate.Time().Before(start.Time()) {
		endDefault = req.EndDate
	}
	end, err := askDate(ctx, p, "End date (YYYY-MM-DD):", endDefault, func(d domain.Date) error {
		switch {
		case d.Time().Before(start.Time()):
			return errors.New("end date must not be before the start date")
		case start.DaysUntil(d)+1 > domain.MaxTripDays:
			return fmt.Errorf("trips are limited to %d days", domain.MaxTripDays)
		}
		return nil
	})
	if err != nil {
		return domain.TripRequest{}, err
	}
	req.EndDate = end

	budgetIdx := slices.Index(domain.Budgets, req.Budget)
	if budgetIdx < 0 {
		budgetIdx = slices.Index(domain.Budgets, domain.BudgetMedium)
	}
	budgetIdx, err = p.Select(ctx, SelectConfig{
		Message:      "Budget:",
		Options:      budgetOptions,
		DefaultIndex: budgetIdx,
	})
	if err != nil {
		return domain.TripRequest{}, err
	}
	if budgetIdx < 0 || budgetIdx >= len(domain.Budgets) {
		return domain.TripRequest{}, fmt.Errorf("%w: unknown budget choice", domain.ErrInvalidRequest)
	}
	req.Budget = domain.Budgets[budgetIdx]

	travelersIdx := slices.Index(domain.TravelerOptions, req.Travelers)
	if travelersIdx < 0 {
		travelersIdx = 1
	}
	travelersIdx, err = p.Select(ctx, SelectConfig{
		Message:      "Travelers:",
		Options:      domain.TravelerOptions,
		DefaultIndex: travelersIdx,
	})
	if err != nil {
		return domain.TripRequest{}, err
	}
	if travelersIdx < 0 || travelersIdx >= len(domain.TravelerOptions) {
		return domain.TripRequest{}, fmt.Errorf("%w: unknown travelers choice", domain.ErrInvalidRequest)
	}
	req.Travelers = domain.TravelerOptions[travelersIdx]

	var defaults []int
	for _, interest := range req.Interests {
		if i := slices.Index(domain.InterestOptions, interest); i >= 0 {
			defaults = append(defaults, i)
		}
	}
	picked, err := p.MultiSelect(ctx, SelectConfig{
		Message:  "Interests:",
		Options:  domain.InterestOptions,
		Defaults: defaults,
		Help:     "Space to toggle, enter to confirm. Leave empty for a general plan.",
	})
	if err != nil {
		return domain.TripRequest{}, err
	}
	req.Interests = make([]string, 0, len(picked))
	for _, i := range picked {
		if i >= 0 && i < len(domain.InterestOptions) {
			req.Interests = append(req.Interests, domain.InterestOptions[i])
		}
	}
	return req, nil
}

func askDate(ctx context.Context, p Prompter, msg string, def domain.Date, check func(domain.Date) error) (domain.Date, error) {
	validate := func(s string) error {
		d, err := domain.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return errors.New("use the YYYY-MM-DD format")
		}
		return check(d)
	}
	raw, err := p.Input(ctx, InputConfig{Message: msg, Default: def.String(), Validator: validate})
	if err != nil {
		return domain.Date{}, err
	}
	// Prompters that skip validators (scripts, pipes) still get checked here.
	if err := validate(raw); err != nil {
		return domain.Date{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return domain.ParseDate(strings.TrimSpace(raw))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
