// Package middleware provides the HTTP middleware stack of the relay.
//
// Middleware stack includes:
//   - CORS: origin allow-list; requests without an Origin header pass
//   - PrivateNetwork: Access-Control-Allow-Private-Network on every response
//   - SecurityHeaders: helmet-style hardening headers
//   - BodyLimit: request body cap
//   - RateLimit: optional per-IP token bucket
//   - Logger and Recovery: zap request logging and panic recovery
//
// Example Usage:
//
//	router.Use(middleware.PrivateNetwork())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins)))
//	router.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
package middleware
