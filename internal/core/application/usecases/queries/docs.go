// Package queries contains read operations. Handlers read straight from the
// database with raw SQL and return flat responses; they never go through the
// aggregates' repositories.
package queries
