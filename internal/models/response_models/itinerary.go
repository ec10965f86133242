package response_models

import (
	"time"

	"github.com/google/uuid"
)

// AppName is stamped on every generated itinerary.
const AppName = "TripWise"

type Activity struct {
	Name        string `json:"name" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Description string `json:"description" validate:"required"`
	Link        string `json:"link" validate:"required"`
	Transport   string `json:"transport" validate:"required"`
	Price       string `json:"price" validate:"required"`
}

type Day struct {
	Day        int        `json:"day" validate:"gt=0"`
	Title      string     `json:"title" validate:"required"`
	Activities []Activity `json:"activities" validate:"required,dive"`
	DailyTips  []string   `json:"daily_tips" validate:"required"`
}

// Trip is the destination-and-schedule payload produced by the model.
type Trip struct {
	Destination  string `json:"destination" validate:"required"`
	Dates        string `json:"dates" validate:"required"`
	Travelers    int    `json:"travelers" validate:"gt=0"`
	TravelerType string `json:"traveler_type" validate:"required"`
	TravelStyle  string `json:"travel_style" validate:"required"`
	Budget       string `json:"budget" validate:"required"`
	Days         []Day  `json:"days" validate:"required,min=1,dive"`
}

type Itinerary struct {
	AppName   string    `json:"app_name"`
	ID        string    `json:"id"`
	Trip      Trip      `json:"trip"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItinerary wraps a validated trip with a fresh id and a UTC creation time.
func NewItinerary(trip Trip) Itinerary {
	return Itinerary{
		AppName:   AppName,
		ID:        uuid.New().String(),
		Trip:      trip,
		CreatedAt: time.Now().UTC(),
	}
}

type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
