// Package middleware provides HTTP middleware for the datepoll API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging via slog
//   - Recovery: converts panics into a JSON 500
//   - CORS: cross-origin handling backed by github.com/rs/cors
//   - MaxBodySize: caps request body size
//   - Compress: gzip response compression
//   - RateLimit: per-client token bucket applied to mutating requests
//
// Compose them with Chain; the first middleware listed is the outermost:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): returns the request identifier
package middleware
