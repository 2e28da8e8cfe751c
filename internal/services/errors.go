// Package services implements the catalog operations behind the CLI:
// validation, persistence through the repositories, and audit history.
package services

import "errors"

var (
	// ErrSongNotFound is returned when no song matches the given ID.
	ErrSongNotFound = errors.New("song not found")

	// ErrNoSearchTerm is returned when a search term is empty or blank.
	ErrNoSearchTerm = errors.New("search term cannot be empty")
)
