package mock

import "github.com/aretw0/tripwizard/pkg/domain"

type idea struct {
	Title       string
	Description string
	Cost        float64 // per person, medium tier
}

// catalogue lists activity ideas per interest. Titles are destination-agnostic.
var catalogue = map[string][]idea{
	"culture": {
		{"Art museum visit", "Spend the morning with the city's main collection.", 20},
		{"Local theatre performance", "Catch a show in a historic venue.", 45},
		{"Architecture walking tour", "Guided walk through landmark buildings.", 25},
		{"Gallery district stroll", "Independent galleries and studios.", 0},
	},
	"food": {
		{"Market food tour", "Taste local specialties with a guide.", 55},
		{"Cooking class", "Learn two regional dishes from a local chef.", 70},
		{"Street food crawl", "Hop between the best-known stalls.", 25},
		{"Wine and cheese tasting", "Regional pairings in a cellar bar.", 40},
	},
	"nature": {
		{"Botanical garden", "Quiet paths and glasshouses.", 10},
		{"Day hike", "Half-day trail with viewpoints.", 0},
		{"Riverside picnic", "Pick up supplies and relax by the water.", 15},
		{"Scenic viewpoint at sunset", "Best light of the day over the city.", 0},
	},
	"adventure": {
		{"Kayak excursion", "Paddle the coastline or river.", 60},
		{"Bike tour", "Cover more ground on two wheels.", 35},
		{"Climbing session", "Indoor or outdoor climbing with gear hire.", 50},
		{"Zip line park", "Treetop courses for all levels.", 65},
	},
	"shopping": {
		{"Flea market", "Vintage finds and local crafts.", 0},
		{"Design district", "Concept stores and local brands.", 0},
		{"Artisan workshop visit", "Meet the makers behind local crafts.", 20},
	},
	"nightlife": {
		{"Rooftop bar", "Cocktails with a view.", 35},
		{"Live music venue", "Local bands in an intimate club.", 30},
		{"Night walking tour", "The old town after dark.", 20},
	},
	"history": {
		{"Old town heritage walk", "Centuries of history in a few streets.", 15},
		{"Castle or fortress visit", "Climb the ramparts.", 18},
		{"History museum", "From the first settlers to today.", 15},
		{"Historic cemetery tour", "Stories of notable residents.", 10},
	},
	"relaxation": {
		{"Spa afternoon", "Thermal baths and a massage.", 80},
		{"Park and café", "Slow afternoon with a book.", 10},
		{"Beach or lakeside time", "Sun, water and nothing to do.", 0},
	},
}

// fallbackInterests are used when a request names none.
var fallbackInterests = []string{"culture", "food"}

// tier describes how a budget level translates into daily spending.
type tier struct {
	Nightly   float64 // per room
	Food      float64 // per person per day
	Transport float64 // per person per day
	Activity  float64 // multiplier over catalogue costs
}

var tiers = map[domain.Budget]tier{
	domain.BudgetLow:    {Nightly: 60, Food: 30, Transport: 10, Activity: 0.6},
	domain.BudgetMedium: {Nightly: 140, Food: 60, Transport: 20, Activity: 1},
	domain.BudgetHigh:   {Nightly: 320, Food: 130, Transport: 55, Activity: 1.8},
}

var budgetTips = map[domain.Budget]string{
	domain.BudgetLow:    "Look for city passes that bundle public transport and museum entry.",
	domain.BudgetMedium: "Book popular attractions online a few days ahead to skip the queues.",
	domain.BudgetHigh:   "Consider a private guide for your first day to get oriented quickly.",
}

var interestTips = map[string]string{
	"culture":    "Many museums have a free or discounted evening once a week.",
	"food":       "Lunch menus are often the best value for sit-down restaurants.",
	"nature":     "Check sunrise and sunset times to plan outdoor activities.",
	"adventure":  "Outdoor activities depend on the weather; keep a backup plan.",
	"shopping":   "Keep receipts for tax-free refunds when leaving the country.",
	"nightlife":  "Note the last public transport times before heading out.",
	"history":    "Audio guides are usually available for a small fee.",
	"relaxation": "Leave one afternoon unplanned; it is often the best part of the trip.",
}
