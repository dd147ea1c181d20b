// Package server provides the HTTP surface of the setlist service: routing, middleware, and JSON handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so unknown methods get a 405 from the mux.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes.
// A handler serving several routes dispatches on [http.Request.Pattern].
//
// # Routes
//
//   - GET    /collections/{id}/members            ordered songs of a setlist
//   - POST   /collections/{id}/members            {"itemId"} appends a song, 201
//   - DELETE /collections/{id}/members/{itemId}   removes a song, 204
//   - PUT    /collections/{id}/members/reorder    {"members": [{"itemId", "position"}]} replaces the order
//   - /items and /collections                    song and setlist CRUD
//   - GET    /healthz                             database liveness
//
// # Errors
//
// Failures are returned as {"error": "<message>"}. Not found maps to 404, conflicts to 409, malformed input to 400,
// an ordering that does not match the setlist's members to 422, and anything else to 500 with a fixed message.
// Storage error text is logged with the request id and never sent to clients.
//
// # Middleware
//
//   - [RequestLogger] : request id (X-Request-ID) and one log line per request
//   - [Recoverer] : panics become 500 responses
//   - [RateLimit] : global token bucket, 429 when exhausted
//   - [CORS] : browser access for configured origins
package server
