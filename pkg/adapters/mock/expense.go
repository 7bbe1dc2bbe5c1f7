package mock

import "math"

// HotelCost returns the accommodation cost for a number of nights.
func HotelCost(pricePerNight float64, nights int) float64 {
	if nights <= 0 {
		return 0
	}
	return round(pricePerNight * float64(nights))
}

// TotalExpense sums every cost.
func TotalExpense(costs ...float64) float64 {
	var total float64
	for _, c := range costs {
		total += c
	}
	return round(total)
}

// DailyBudget spreads total over days. It returns 0 when days is not positive.
func DailyBudget(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return round(total / float64(days))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
