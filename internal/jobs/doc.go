// Package jobs contains background workers that run alongside the HTTP
// server.
package jobs
