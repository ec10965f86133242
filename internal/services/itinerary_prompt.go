package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripwise/internal/models/request_models"
)

const itinerarySystemPrompt = "You are an expert travel planner for TripWise. Create engaging, personalized itineraries " +
	"with a friendly, helpful tone. Return only valid JSON responses."

var itineraryInstructions = []string{
	`Create clear, concise, and engaging activity descriptions. Use friendly language like "You'll love...", "Don't miss...", "A local favorite!".`,
	"Add detailed transport instructions (walking, taxi, metro) with approximate time between locations.",
	"Include local tips, hidden gems, and food recommendations to make it feel personalized.",
	"Adjust timing and pacing based on the travel style (relaxed = fewer activities, adventurous = more packed).",
	"If there are special requests (vegan, halal, accessibility, family-friendly), incorporate them throughout.",
	"Suggest optional activities if extra time is available.",
	"Include 3-4 activities per day matching the travel style and budget.",
}

// BuildItineraryPrompts returns the system and user prompts for one request.
func BuildItineraryPrompts(req request_models.ItineraryRequest) (string, string) {
	var b strings.Builder

	b.WriteString("You are an expert travel planner and editor for the mobile app TripWise. ")
	b.WriteString("Your goal is to create an amazing, personalized travel itinerary.\n\n")

	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s\n", req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "Travelers: %d %s\n", req.NumTravelers, req.TravelerType)
	fmt.Fprintf(&b, "Travel Style: %s\n", req.TravelStyle)
	fmt.Fprintf(&b, "Budget: %s euros total\n", req.Budget)
	fmt.Fprintf(&b, "Interests: %s\n", req.Interests)
	if special := strings.TrimSpace(req.SpecialRequests); special != "" {
		fmt.Fprintf(&b, "Special Requests: %s\n", special)
	}

	b.WriteString("\n**Your Instructions:**\n")
	for i, line := range itineraryInstructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	b.WriteString("\nReturn ONLY valid JSON (no markdown) in this exact structure:\n")
	b.WriteString(itinerarySkeleton(req))

	return itinerarySystemPrompt, b.String()
}

// itinerarySkeleton renders the example document with the request values
// JSON-escaped, so a destination containing quotes cannot break the example.
func itinerarySkeleton(req request_models.ItineraryRequest) string {
	return fmt.Sprintf(`{
  "app_name": "TripWise",
  "trip": {
    "destination": %s,
    "dates": %s,
    "travelers": %d,
    "traveler_type": %s,
    "travel_style": %s,
    "budget": %s,
    "days": [
      {
        "day": 1,
        "title": "A catchy, engaging title for the day",
        "activities": [
          {
            "name": "Activity name",
            "time": "HH:MM - HH:MM",
            "description": "Engaging description with personality. Example: 'You'll love the stunning views from here!'",
            "link": "https://maps.google.com/?q=Location+Name",
            "transport": "Walk 5 min from previous location",
            "price": "€XX per person"
          }
        ],
        "daily_tips": [
          "Local tip or hidden gem",
          "Food recommendation",
          "Optional activity if time permits"
        ]
      }
    ]
  }
}`,
		jsonString(req.Destination),
		jsonString(req.StartDate+" - "+req.EndDate),
		req.NumTravelers,
		jsonString(req.TravelerType),
		jsonString(req.TravelStyle),
		jsonString(req.Budget),
	)
}

func jsonString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
