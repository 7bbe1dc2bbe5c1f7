/*
Package domain contains the core domain models of the trip-planning wizard.

It defines the screens of the wizard flow, the preloader steps, the trip request a
user submits and the itinerary produced for it. This package is kept pure and free of
external dependencies like I/O or timers, following Hexagonal Architecture principles.

# Key Entities

  - Screen: The single top-level view active in a session.
  - Step: One labeled phase of the preloader animation.
  - TripRequest: The parameters a user supplies to request an itinerary.
  - Itinerary: The generated plan returned for a TripRequest.
  - Snapshot: A value copy of a session, ready to be rendered by any frontend.
*/
package domain
