package domain

import "time"

// Activity is a single entry of a day plan.
type Activity struct {
	Time          string  `json:"time"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// DayPlan groups the activities of one calendar day.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       Date       `json:"date"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// CostBreakdown summarizes the estimated expenses of a trip, for all travelers.
type CostBreakdown struct {
	Currency      string  `json:"currency"`
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
	Total         float64 `json:"total"`
	DailyBudget   float64 `json:"daily_budget"`
}

// Itinerary is the generated plan returned for a TripRequest.
type Itinerary struct {
	Destination string        `json:"destination"`
	StartDate   Date          `json:"start_date"`
	EndDate     Date          `json:"end_date"`
	Budget      Budget        `json:"budget"`
	Travelers   int           `json:"travelers"`
	Interests   []string      `json:"interests"`
	Days        []DayPlan     `json:"days"`
	Cost        CostBreakdown `json:"cost"`
	Tips        []string      `json:"tips,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// IsEmpty reports whether the itinerary carries no plan.
func (it Itinerary) IsEmpty() bool {
	return it.Destination == "" && len(it.Days) == 0
}

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Interests = cloneStrings(it.Interests)
	out.Tips = cloneStrings(it.Tips)
	if it.Days != nil {
		out.Days = make([]DayPlan, len(it.Days))
		for i, d := range it.Days {
			d.Activities = append([]Activity(nil), d.Activities...)
			out.Days[i] = d
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
