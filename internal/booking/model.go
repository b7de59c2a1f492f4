package booking

// Request is a booking attempt. Either SlotID or the explicit window must be set.
type Request struct {
	RequesterID string `json:"-" validate:"required"`
	FacilityID  string `json:"fieldId" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotID      string `json:"slotId" validate:"required_without_all=StartTime EndTime"`
	StartTime   string `json:"startTime" validate:"omitempty,hhmm"`
	EndTime     string `json:"endTime" validate:"omitempty,hhmm"`
}

type CreateReservationRequest struct {
	FacilityID string `json:"fieldId" example:"3f1c0d2e-6d7b-4b8e-9a55-0f3c2b1a9e77"`
	Date       string `json:"date" example:"2025-03-10"`
	SlotID     string `json:"slotId,omitempty"`
	StartTime  string `json:"startTime,omitempty" example:"10:00"`
	EndTime    string `json:"endTime,omitempty" example:"11:00"`
}

type ValidationErrorResponse struct {
	Error   string       `json:"error" example:"missing required booking data"`
	Details []FieldError `json:"details"`
}
