// Package server provides an HTTP server on Gin, with h2c support, whose
// error responses go through the exception handler and response renderer.
//
// Handlers report failures instead of writing error bodies:
//
//	r.POST("/users", func(c *gin.Context) {
//	    var req CreateUser
//	    if err := server.BindJSON(c, &req); err != nil {
//	        server.RespondWithError(c, err)
//	        return
//	    }
//	    server.RespondCreated(c, user)
//	})
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - RequestID: Request ID generation and propagation
//   - RequestLogger: Request logging with latency tracking
//   - Exceptions: Error mapping and envelope rendering
//   - Recovery: Panics handed to Exceptions as errors
//   - RateLimit: Token bucket rate limiting producing throttled errors
//   - Auth: JWT bearer authentication
//   - SkipEnvelope: Per-route opt-out of the response envelope
package server
