// Package models provides the data structures shared by the categorizer and the
// assistant. Every value here is a read-only input or a transient result; nothing
// is persisted or mutated in place.
package models
