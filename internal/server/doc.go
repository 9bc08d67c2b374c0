// Package server implements the local video generation backend served by the serve command.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Generation Endpoint
//
// [GenerateHandler] accepts POST /generate requests matching the client's wire
// contract, fakes the render step with a placeholder MP4, records the job
// through the repositories package, and returns the relative video location.
//
// # Delivery
//
// [VideoHandler] serves finished videos from the video directory under /videos/,
// and [HealthHandler] answers GET /health so clients can probe availability.
//
// The web package (internal/web) provides an embedded browser page served at
// the root route for inspecting generated videos.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
