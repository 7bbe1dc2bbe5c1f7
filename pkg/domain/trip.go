package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests and fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD"; an empty string yields the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Budget is the spending tier of a trip.
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// Budgets lists the accepted budget tiers.
var Budgets = []Budget{BudgetLow, BudgetMedium, BudgetHigh}

// TravelerOptions are the traveler counts offered by the form. "5+" is an open bucket.
var TravelerOptions = []string{"1", "2", "3", "4", "5+"}

// InterestOptions are the interests offered by the form.
var InterestOptions = []string{
	"culture", "food", "nature", "adventure", "shopping", "nightlife", "history", "relaxation",
}

// TripRequest holds the parameters a user supplies to request an itinerary.
type TripRequest struct {
	Destination string   `json:"destination"`
	StartDate   Date     `json:"start_date"`
	EndDate     Date     `json:"end_date"`
	Budget      Budget   `json:"budget"`
	Travelers   string   `json:"travelers"`
	Interests   []string `json:"interests"`
}

// Clone returns a copy that shares no memory with r.
func (r TripRequest) Clone() TripRequest {
	out := r
	if r.Interests != nil {
		out.Interests = append([]string(nil), r.Interests...)
	}
	return out
}

// Nights returns the number of nights between start and end dates.
func (r TripRequest) Nights() int {
	return r.StartDate.DaysUntil(r.EndDate)
}

// Days returns the number of calendar days covered by the trip, inclusive.
func (r TripRequest) Days() int {
	return r.Nights() + 1
}

// TravelerCount converts Travelers to a number in [1, MaxTravelers]. The "5+" bucket counts as 5.
func (r TripRequest) TravelerCount() int {
	s := strings.TrimSuffix(strings.TrimSpace(r.Travelers), "+")
	n, err := strconv.Atoi(s)
	switch {
	case err != nil || n < 1:
		return 1
	case n > MaxTravelers:
		return MaxTravelers
	}
	return n
}

// Validate checks the request and returns a *ValidationError listing every problem, or nil.
func (r TripRequest) Validate() error {
	var verr ValidationError

	if strings.TrimSpace(r.Destination) == "" {
		verr.Add("destination", "is required")
	}

	if r.StartDate.IsZero() {
		verr.Add("start_date", "is required")
	}
	if r.EndDate.IsZero() {
		verr.Add("end_date", "is required")
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() {
		switch {
		case r.EndDate.Time().Before(r.StartDate.Time()):
			verr.Add("end_date", "must not be before start_date")
		case r.Days() > MaxTripDays:
			verr.Add("end_date", fmt.Sprintf("trip cannot exceed %d days", MaxTripDays))
		}
	}

	switch r.Budget {
	case BudgetLow, BudgetMedium, BudgetHigh:
	case "":
		verr.Add("budget", "is required")
	default:
		verr.Add("budget", fmt.Sprintf("must be one of low, medium, high (got %q)", r.Budget))
	}

	t := strings.TrimSpace(r.Travelers)
	if t == "" {
		verr.Add("travelers", "is required")
	} else if strings.HasSuffix(t, "+") && t != TravelerOptions[len(TravelerOptions)-1] {
		verr.Add("travelers", fmt.Sprintf("open count must be %q", TravelerOptions[len(TravelerOptions)-1]))
	} else if n, err := strconv.Atoi(strings.TrimSuffix(t, "+")); err != nil || n < 1 {
		verr.Add("travelers", "must be a positive number")
	} else if n > MaxTravelers {
		verr.Add("travelers", fmt.Sprintf("cannot exceed %d", MaxTravelers))
	}

	for i, interest := range r.Interests {
		if strings.TrimSpace(interest) == "" {
			verr.Add(fmt.Sprintf("interests[%d]", i), "must not be blank")
		}
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return &verr
}
