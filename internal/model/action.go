package model

import "time"

// DateLayout is the wire format for action dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Action represents a proposed eco-initiative event.
type Action struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	ProposerID   string   `json:"proposer_id"`
	Participants []string `json:"participants,omitempty"`
	Ratings      []Rating `json:"ratings"`
}

// Rating is a single review left for an action.
type Rating struct {
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// ParseDate parses an action date in the wire format.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// HasParticipant reports whether userID is already registered for the action.
func (a *Action) HasParticipant(userID string) bool {
	for _, id := range a.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
