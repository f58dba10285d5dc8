// Package middleware provides HTTP middleware for the SSE and streamable-HTTP
// transports: request metrics and logging, security headers, CORS for the
// panel's web front end, and request body limits.
package middleware
