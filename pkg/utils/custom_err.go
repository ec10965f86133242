package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrDatabaseError       = errors.New("database error")
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrModelTimeout        = errors.New("model timed out")
	ErrModelBlocked        = errors.New("model response blocked")
	ErrItineraryGeneration = errors.New("could not generate itinerary")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
)
