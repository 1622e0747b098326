package tasks

import (
	"encoding/json"

	"agenda-api/core/constants"

	"github.com/hibiken/asynq"
)

// BookingEmailPayload is the payload of a booking email task.
type BookingEmailPayload struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Summary   string `json:"summary"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Kind      string `json:"kind"` // confirmation, cancellation or reminder
}

const (
	KindConfirmation = "confirmation"
	KindCancellation = "cancellation"
	KindReminder     = "reminder"
)

// NewBookingEmailTask builds the asynq task for one booking email.
func NewBookingEmailTask(payload BookingEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeBookingEmail, data), nil
}
