// Package report formats itineraries for display and download.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/tripwizard/pkg/domain"
)

// Markdown renders an itinerary as a self-contained markdown document.
func Markdown(it domain.Itinerary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Trip to %s\n\n", it.Destination)
	nights := it.StartDate.DaysUntil(it.EndDate)
	fmt.Fprintf(&sb, "**Dates:** %s to %s (%d %s, %d %s)  \n",
		it.StartDate, it.EndDate, len(it.Days), plural(len(it.Days), "day"), nights, plural(nights, "night"))
	fmt.Fprintf(&sb, "**Travelers:** %d  \n", it.Travelers)
	fmt.Fprintf(&sb, "**Budget:** %s  \n", it.Budget)
	if len(it.Interests) > 0 {
		fmt.Fprintf(&sb, "**Interests:** %s\n", strings.Join(it.Interests, ", "))
	}

	for _, d := range it.Days {
		fmt.Fprintf(&sb, "\n## Day %d (%s): %s\n\n", d.Day, d.Date.Time().Format("Mon 2 Jan"), d.Title)
		sb.WriteString("| Time | Activity | Category | Est. cost |\n")
		sb.WriteString("|------|----------|----------|-----------|\n")
		for _, a := range d.Activities {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", a.Time, escape(a.Title), a.Category, money(a.EstimatedCost, it.Cost.Currency))
		}
	}

	c := it.Cost
	fmt.Fprintf(&sb, "\n## Estimated costs (%s)\n\n", c.Currency)
	sb.WriteString("| Item | Amount |\n")
	sb.WriteString("|------|--------|\n")
	rows := []struct {
		name   string
		amount float64
	}{
		{"Accommodation", c.Accommodation},
		{"Food", c.Food},
		{"Activities", c.Activities},
		{"Transport", c.Transport},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %.2f |\n", r.name, r.amount)
	}
	fmt.Fprintf(&sb, "| **Total** | **%.2f** |\n", c.Total)
	fmt.Fprintf(&sb, "\nDaily budget: %.2f %s\n", c.DailyBudget, c.Currency)

	if len(it.Tips) > 0 {
		sb.WriteString("\n## Tips\n\n")
		for _, tip := range it.Tips {
			fmt.Fprintf(&sb, "- %s\n", tip)
		}
	}
	return sb.String()
}

func money(v float64, currency string) string {
	if v == 0 {
		return "included"
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
