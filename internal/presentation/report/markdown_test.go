package report_test

import (
	"strings"
	"testing"

	"github.com/aretw0/tripwizard/internal/presentation/report"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	it := domain.Itinerary{
		Destination: "Paris",
		StartDate:   domain.MustParseDate("2025-06-01"),
		EndDate:     domain.MustParseDate("2025-06-02"),
		Budget:      domain.BudgetMedium,
		Travelers:   2,
		Interests:   []string{"food", "history"},
		Days: []domain.DayPlan{
			{Day: 1, Date: domain.MustParseDate("2025-06-01"), Title: "Arrival in Paris", Activities: []domain.Activity{
				{Time: "08:30", Title: "Breakfast | café", Category: "food"},
				{Time: "10:00", Title: "Market food tour", Category: "food", EstimatedCost: 110},
			}},
			{Day: 2, Date: domain.MustParseDate("2025-06-02"), Title: "Farewell to Paris"},
		},
		Cost: domain.CostBreakdown{Currency: "USD", Accommodation: 140, Food: 240, Activities: 110, Transport: 80, Total: 570, DailyBudget: 285},
		Tips: []string{"Book ahead."},
	}

	md := report.Markdown(it)

	for _, want := range []string{
		"# Trip to Paris\n",
		"**Dates:** 2025-06-01 to 2025-06-02 (2 days, 1 night)",
		"**Interests:** food, history",
		"## Day 1 (Sun 1 Jun): Arrival in Paris",
		"| 08:30 | Breakfast \\| café | food | included |",
		"| 10:00 | Market food tour | food | 110.00 USD |",
		"## Day 2 (Mon 2 Jun): Farewell to Paris",
		"| **Total** | **570.00** |",
		"Daily budget: 285.00 USD",
		"- Book ahead.",
	} {
		assert.Contains(t, md, want)
	}
	assert.Equal(t, 1, strings.Count(md, "## Tips"))
}
