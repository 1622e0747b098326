package dto

// ========== Calendar DTOs ==========

type CreateCalendarRequest struct {
	Summary string `json:"summary"`
}

type CalendarResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Slug    string `json:"slug"`
}

// ========== Event DTOs ==========

// CreateEventRequest creates one slot, or a weekly series when Recurrent
// is set.
type CreateEventRequest struct {
	Day          string `json:"day"`        // YYYY-MM-DD
	StartTime    string `json:"start_time"` // HH:MM
	EndTime      string `json:"end_time"`   // HH:MM
	LocationName string `json:"location_name,omitempty"`
	Recurrent    bool   `json:"recurrent"`
}

// EventInfoRequest identifies an event by its "day|start_time|end_time"
// composite key.
type EventInfoRequest struct {
	EventInfo string `json:"event_info"`
	All       bool   `json:"all,omitempty"`
}

// AssignEventRequest lets an owner hand a slot to one of their clients.
type AssignEventRequest struct {
	EventInfo      string `json:"event_info"`
	IdentityNumber int64  `json:"identity_number"`
}

// BookEventRequest lets a client take a free slot on a calendar.
type BookEventRequest struct {
	CalendarSlug string `json:"calendar_slug"`
	EventInfo    string `json:"event_info"`
}

type EventResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location,omitempty"`
	Free      bool   `json:"free"`
	ClientID  string `json:"client_id,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}
