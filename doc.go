/*
Package tripwizard is the core of a travel-planning wizard: an animated preloader
followed by a trip form, itinerary generation and review.

# Concept

A Session shows exactly one screen at a time:

	preloading -> collecting -> generating -> reviewing
	                  ^              |             |
	                  +--------------+-------------+

The preloader steps through its labels on a fixed cadence (1000ms per step, an
800ms hold on the last one and a 500ms fade) and hands over to the form exactly
once. Submitting a valid TripRequest starts generation in the background;
success moves to reviewing, while failure, timeout or cancellation return to
the form with a message. Edit goes back to the form with the last request kept.

All timing runs through a ports.Scheduler, so tests drive sessions with
timer.Manual instead of sleeping.

# Usage

	s, err := tripwizard.New()
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	_ = s.Start(ctx)
	if _, err := s.Await(ctx, domain.ScreenCollecting); err != nil {
		log.Fatal(err)
	}
	if err := s.Submit(ctx, req); err != nil {
		log.Fatal(err) // *domain.ValidationError for a malformed request
	}
	snap, _ := s.Await(ctx, domain.ScreenReviewing, domain.ScreenCollecting)
	fmt.Println(snap.Itinerary.Destination)

The terminal wizard (tripwizard run) and the HTTP server (tripwizard serve)
are thin adapters around Session.
*/
package tripwizard
