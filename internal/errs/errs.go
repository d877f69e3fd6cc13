// Package errs defines the error shapes returned to API clients.
//
// Every handler, service and middleware returns either a plain error or an
// *HTTPError; the global error handler renders both into the same JSON
// envelope so the frontend only has to understand one format.
package errs
