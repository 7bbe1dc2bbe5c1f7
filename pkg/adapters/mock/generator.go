// Package mock provides a deterministic, offline itinerary generator.
//
// Activities are drawn from a built-in catalogue keyed by interest; the choice
// for each slot is a murmur3 hash of the destination, day and slot, so the same
// request always yields the same plan.
package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/spaolacci/murmur3"
)

// DefaultDelay simulates the latency of a real planning backend.
const DefaultDelay = 2 * time.Second

// DefaultCurrency is used for every cost estimate.
const DefaultCurrency = "USD"

// Generator implements ports.ItineraryGenerator without any network access.
type Generator struct {
	delay    time.Duration
	fail     error
	now      func() time.Time
	currency string
}

// Option configures a Generator.
type Option func(*Generator)

// WithDelay sets the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// WithFailure makes every Generate call fail with err after the delay.
func WithFailure(err error) Option {
	return func(g *Generator) {
		g.fail = err
	}
}

// WithClock overrides the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithCurrency sets the currency code reported in cost breakdowns.
func WithCurrency(code string) Option {
	return func(g *Generator) {
		if code != "" {
			g.currency = code
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		delay:    DefaultDelay,
		now:      time.Now,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate waits for the simulated delay and builds a day-by-day plan.
func (g *Generator) Generate(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return domain.Itinerary{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.Itinerary{}, err
	}

	if g.delay > 0 {
		t := time.NewTimer(g.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Itinerary{}, ctx.Err()
		case <-t.C:
		}
	}
	if g.fail != nil {
		return domain.Itinerary{}, fmt.Errorf("mock generator: %w", g.fail)
	}
	return g.Build(req), nil
}

// Build assembles the itinerary for a valid request without waiting.
func (g *Generator) Build(req domain.TripRequest) domain.Itinerary {
	interests := normalizeInterests(req.Interests)
	level, ok := tiers[req.Budget]
	if !ok {
		level = tiers[domain.BudgetMedium]
	}
	travelers := req.TravelerCount()
	days := req.Days()

	plans := make([]domain.DayPlan, days)
	var activityTotal float64
	for d := 0; d < days; d++ {
		plans[d] = g.dayPlan(req, d, days, interests, level, travelers)
		for _, a := range plans[d].Activities {
			activityTotal += a.EstimatedCost
		}
	}

	rooms := (travelers + 1) / 2
	accommodation := HotelCost(level.Nightly*float64(rooms), req.Nights())
	food := round(level.Food * float64(travelers*days))
	transport := round(level.Transport * float64(travelers*days))
	activities := round(activityTotal)
	total := TotalExpense(accommodation, food, activities, transport)

	return domain.Itinerary{
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Travelers:   travelers,
		Interests:   interests,
		Days:        plans,
		Cost: domain.CostBreakdown{
			Currency:      g.currency,
			Accommodation: accommodation,
			Food:          food,
			Activities:    activities,
			Transport:     transport,
			Total:         total,
			DailyBudget:   DailyBudget(total, days),
		},
		Tips:        tips(req.Budget, interests),
		GeneratedAt: g.now(),
	}
}

func (g *Generator) dayPlan(req domain.TripRequest, day, days int, interests []string, level tier, travelers int) domain.DayPlan {
	dest := strings.TrimSpace(req.Destination)
	first := interests[day%len(interests)]

	title := fmt.Sprintf("Exploring %s: %s", dest, first)
	switch {
	case day == 0:
		title = "Arrival in " + dest
	case day == days-1:
		title = "Farewell to " + dest
	}

	activities := []domain.Activity{
		{Time: "08:30", Title: "Breakfast at a local café", Category: "food"},
	}
	for slot, at := range []string{"10:00", "14:30"} {
		interest := interests[(day+slot)%len(interests)]
		pick := choose(dest, interest, day, slot)
		activities = append(activities, domain.Activity{
			Time:          at,
			Title:         pick.Title,
			Category:      interest,
			Description:   pick.Description,
			EstimatedCost: round(pick.Cost * level.Activity * float64(travelers)),
		})
	}
	activities = append(activities, domain.Activity{Time: "19:30", Title: "Dinner in " + dest, Category: "food"})

	return domain.DayPlan{
		Day:        day + 1,
		Date:       req.StartDate.AddDays(day),
		Title:      title,
		Activities: activities,
	}
}

func choose(dest, interest string, day, slot int) idea {
	ideas := catalogue[interest]
	key := fmt.Sprintf("%s|%s|%d|%d", strings.ToLower(dest), interest, day, slot)
	return ideas[murmur3.Sum64([]byte(key))%uint64(len(ideas))]
}

func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if _, known := catalogue[s]; !known || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return append([]string(nil), fallbackInterests...)
	}
	return out
}

func tips(budget domain.Budget, interests []string) []string {
	out := []string{"Keep digital and paper copies of your bookings."}
	if t, ok := budgetTips[budget]; ok {
		out = append(out, t)
	}
	for _, i := range interests {
		if t, ok := interestTips[i]; ok {
			out = append(out, t)
		}
	}
	return out
}
