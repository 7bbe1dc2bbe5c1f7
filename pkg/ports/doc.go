/*
Package ports defines the driven ports (interfaces) of the wizard core.

These interfaces decouple the flow controller from external implementations, allowing
the core to run against real timers or a deterministic clock, and against any
itinerary source.

# Key Interfaces

  - ItineraryGenerator: Produces an Itinerary for a TripRequest (the simulated planner by default).
  - Scheduler: Runs one-shot and periodic tasks and hands back cancellation handles.
*/
package ports
