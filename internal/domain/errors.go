package domain

import "errors"

var (
	// ErrPropertyNotFound is returned when a property is not found
	ErrPropertyNotFound = errors.New("property not found")

	// ErrDuplicateFavorite is returned when a property is already favorited
	ErrDuplicateFavorite = errors.New("property already favorited")

	// ErrSavedSearchNotFound is returned when a saved search is not found
	ErrSavedSearchNotFound = errors.New("saved search not found")
)
