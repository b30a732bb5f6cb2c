package api

// Request payloads, one per action. Built fresh per interaction and discarded
// once the response arrives.

type ReviewRequest struct {
	ServiceID int     `json:"service_id"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
}

type BookingRequest struct {
	ServiceID    int    `json:"service_id"`
	BookingDate  string `json:"booking_date"`
	BookingNotes string `json:"booking_notes"`
}

type bookingRemoval struct {
	BookingID string `json:"booking_id"`
}

type userRemoval struct {
	UserID string `json:"user_id"`
}

// actionResponse is the uniform response shape of every action endpoint.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
