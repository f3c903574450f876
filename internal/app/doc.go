// Package app wires the analysis engine to its collaborators.
//
// The Service owns the request-level flow: fetch a user's entries, run the
// engine, attach request metadata, then persist and cache the report.
// Storage failures after a successful analysis degrade to log warnings; the
// caller still gets the verdict.
package app
