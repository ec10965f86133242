package request_models

import "time"

// DateLayout is the calendar date format accepted for trip dates.
const DateLayout = "2006-01-02"

type ItineraryRequest struct {
	Destination     string `json:"destination" binding:"required"`
	StartDate       string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" binding:"required,datetime=2006-01-02"`
	NumTravelers    int    `json:"num_travelers" binding:"required,gt=0"`
	TravelerType    string `json:"traveler_type" binding:"required"`
	TravelStyle     string `json:"travel_style" binding:"required"`
	Budget          string `json:"budget" binding:"required"`
	Interests       string `json:"interests" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

// Dates parses the start and end dates. Binding has already checked the layout.
func (r ItineraryRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}
