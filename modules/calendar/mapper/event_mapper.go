package mapper

import (
	"agenda-api/core/constants"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/entity"
)

func ToEventResponse(event *entity.Event) dto.EventResponse {
	resp := dto.EventResponse{
		Day:       event.Day.Format(constants.DayLayout),
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Free:      event.Free,
	}
	if event.Location != nil {
		resp.Location = *event.Location
	}
	if event.ClientID != nil {
		resp.ClientID = event.ClientID.String()
	}
	return resp
}

func ToEventListResponse(events []entity.Event) dto.EventListResponse {
	resp := dto.EventListResponse{Events: make([]dto.EventResponse, 0, len(events))}
	for i := range events {
		resp.Events = append(resp.Events, ToEventResponse(&events[i]))
	}
	return resp
}

func ToCalendarResponse(calendar *entity.Calendar) dto.CalendarResponse {
	return dto.CalendarResponse{
		ID:      calendar.ID.String(),
		Summary: calendar.Summary,
		Slug:    calendar.Slug,
	}
}
