package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
)

// SampleRequest is the request used by the contract suites.
func SampleRequest() domain.TripRequest {
	return domain.TripRequest{
		Destination: "Paris",
		StartDate:   domain.MustParseDate("2025-06-01"),
		EndDate:     domain.MustParseDate("2025-06-07"),
		Budget:      domain.BudgetMedium,
		Travelers:   "2",
		Interests:   []string{"food"},
	}
}

// GeneratorContractTest is a reusable test suite that verifies if an adapter complies with ports.ItineraryGenerator.
func GeneratorContractTest(t *testing.T, gen ports.ItineraryGenerator) {
	t.Helper()

	t.Run("Generate_Success", func(t *testing.T) {
		req := SampleRequest()
		it, err := gen.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it.IsEmpty() {
			t.Fatal("expected a non-empty itinerary")
		}
		if it.Destination != req.Destination {
			t.Errorf("destination mismatch: got %q, want %q", it.Destination, req.Destination)
		}
		if len(it.Days) != req.Days() {
			t.Errorf("expected %d day plans, got %d", req.Days(), len(it.Days))
		}
	})

	t.Run("Generate_DoesNotMutateRequest", func(t *testing.T) {
		req := SampleRequest()
		if _, err := gen.Generate(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Interests[0] != "food" {
			t.Errorf("generator mutated the request interests: %v", req.Interests)
		}
	})

	t.Run("Generate_HonoursCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		go func() {
			_, err := gen.Generate(ctx, SampleRequest())
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("expected nil or context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("generator ignored a cancelled context")
		}
	})
}
