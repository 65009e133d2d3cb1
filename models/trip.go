package models

import (
	"strings"
	"time"
)

// TripRequest is the form / JSON payload describing one stay.
type TripRequest struct {
	Destination string `json:"destination" form:"destination"`
	People      int    `json:"people" form:"people"`
	Budget      int    `json:"budget" form:"budget"` // USD
	CheckIn     string `json:"check_in" form:"check_in"`
	CheckOut    string `json:"check_out" form:"check_out"`
}

// Stay is a TripRequest after its dates have been parsed.
type Stay struct {
	Destination string
	People      int
	Budget      int
	CheckIn     time.Time
	CheckOut    time.Time
	Days        int
}

// Itinerary is the result of one research-then-plan run.
type Itinerary struct {
	ID          string    `json:"id" bson:"id"`
	SessionID   string    `json:"-" bson:"sessionId"`
	Destination string    `json:"destination" bson:"destination"`
	People      int       `json:"people" bson:"people"`
	Budget      int       `json:"budget" bson:"budget"`
	CheckIn     string    `json:"check_in" bson:"checkIn"`
	CheckOut    string    `json:"check_out" bson:"checkOut"`
	Days        int       `json:"days" bson:"days"`
	Provider    string    `json:"provider" bson:"provider"`
	Result      string    `json:"result" bson:"result"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
}

// FileName is the download name for the itinerary text. Characters that would
// break a path or a Content-Disposition header are replaced with '_'.
func (it *Itinerary) FileName() string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/', r == '\\', r == '"', r < 0x20, r == 0x7f:
			return '_'
		}
		return r
	}, strings.TrimSpace(it.Destination))
	return "travel_itinerary_" + name + ".txt"
}
