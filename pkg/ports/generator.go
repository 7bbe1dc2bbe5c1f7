package ports

import (
	"context"

	"github.com/aretw0/tripwizard/pkg/domain"
)

// ItineraryGenerator builds an itinerary for a trip request.
// Implementations must honour ctx cancellation; the controller bounds every call with a deadline.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error)
}

// GeneratorFunc adapts an ordinary function to the ItineraryGenerator interface.
type GeneratorFunc func(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error) {
	return f(ctx, req)
}
