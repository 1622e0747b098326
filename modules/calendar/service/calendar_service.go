package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agenda-api/core/constants"
	appErrors "agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"
	authEntity "agenda-api/modules/auth/entity"
	authService "agenda-api/modules/auth/service"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/entity"
	"agenda-api/modules/calendar/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/teambition/rrule-go"
)

// recurrenceWindowDays bounds how far a weekly series is expanded: the
// last occurrence falls strictly inside (day, day+365d).
const recurrenceWindowDays = 365

// calendarSlugRetries bounds slug regeneration on a naming collision.
const calendarSlugRetries = 3

// Notifier receives booking lifecycle events. Implementations must not
// block the request; delivery happens out of band.
type Notifier interface {
	EventAssigned(ctx context.Context, clientID uuid.UUID, clientEmail string, event *entity.Event)
	EventFreed(ctx context.Context, clientID uuid.UUID, clientEmail string, event *entity.Event)
}

type CalendarServiceInterface interface {
	CreateCalendar(ctx context.Context, ownerID uuid.UUID, summary string) (*entity.Calendar, *appErrors.AppError)
	GetCalendarByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, *appErrors.AppError)
	CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) *appErrors.AppError
	DeleteEvent(ctx context.Context, ownerID uuid.UUID, eventInfo string, all bool) *appErrors.AppError
	AssignEvent(ctx context.Context, ownerID uuid.UUID, identityNumber int64, eventInfo string) *appErrors.AppError
	FreeEvent(ctx context.Context, ownerID uuid.UUID, eventInfo string) *appErrors.AppError
	BookEvent(ctx context.Context, clientID uuid.UUID, calendarSlug, eventInfo string) *appErrors.AppError
	CancelBooking(ctx context.Context, clientID uuid.UUID, calendarSlug, eventInfo string) *appErrors.AppError
	AvailableEvents(ctx context.Context, principal authEntity.Principal, month, year int) ([]entity.Event, *appErrors.AppError)
	PublicFreeEvents(ctx context.Context, calendarSlug string, month, year int) ([]entity.Event, *appErrors.AppError)
	GetEvents(ctx context.Context, ownerID uuid.UUID, filter entity.EventFilter) ([]entity.Event, *appErrors.AppError)
}

type CalendarService struct {
	calendars repository.CalendarRepositoryInterface
	events    repository.EventRepositoryInterface
	auth      authService.AuthServiceInterface
	notifier  Notifier
}

func NewCalendarService(
	calendars repository.CalendarRepositoryInterface,
	events repository.EventRepositoryInterface,
	auth authService.AuthServiceInterface,
	notifier Notifier,
) *CalendarService {
	return &CalendarService{
		calendars: calendars,
		events:    events,
		auth:      auth,
		notifier:  notifier,
	}
}

// CreateCalendar creates the owner's single calendar. Its slug comes from
// the summary; a taken slug gets a random suffix.
func (s *CalendarService) CreateCalendar(ctx context.Context, ownerID uuid.UUID, summary string) (*entity.Calendar, *appErrors.AppError) {
	if strings.TrimSpace(summary) == "" {
		return nil, appErrors.NewAppError(appErrors.ErrInvalidInput, "summary is required", nil)
	}

	existing, err := s.calendars.GetByOwnerID(ctx, ownerID)
	if err != nil {
		logger.Error("CalendarService:CreateCalendar:GetByOwnerID:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up calendar", err)
	}
	if existing != nil {
		return nil, appErrors.NewAppError(appErrors.ErrAlreadyExists, "owner already has a calendar", nil)
	}

	logger.Info("CalendarService:CreateCalendar", "owner_id", ownerID, "summary", summary)

	calendar := &entity.Calendar{
		OwnerID: ownerID,
		Summary: summary,
		Slug:    slug.Make(summary),
	}
	for attempt := 0; ; attempt++ {
		err := s.calendars.Create(ctx, calendar)
		if err == nil {
			return calendar, nil
		}
		if isUniqueViolationOn(err, "calendars_slug_key") && attempt < calendarSlugRetries {
			calendar.Slug = slug.Make(fmt.Sprintf("%s-%s", summary, strings.ToLower(utils.GenerateID())))
			continue
		}
		if isUniqueViolation(err) {
			return nil, appErrors.NewAppError(appErrors.ErrAlreadyExists, "owner already has a calendar", err)
		}
		logger.Error("CalendarService:CreateCalendar:Create:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to create calendar", err)
	}
}

func (s *CalendarService) GetCalendarByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, *appErrors.AppError) {
	calendar, err := s.calendars.GetByOwnerID(ctx, ownerID)
	if err != nil {
		logger.Error("CalendarService:GetCalendarByOwner:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up calendar", err)
	}
	if calendar == nil {
		return nil, appErrors.NewAppError(appErrors.ErrNotFound, "owner has no calendar", nil)
	}
	return calendar, nil
}

// CreateEvent adds a slot to the owner's calendar. With Recurrent set, it
// also creates the weekly occurrences at day+7, day+14, … strictly inside
// a 365-day window, each validated against its own day. A failing
// occurrence aborts the remainder of the series; occurrences already
// persisted stay persisted.
func (s *CalendarService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) *appErrors.AppError {
	calendar, appErr := s.GetCalendarByOwner(ctx, ownerID)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventTimes(req.Day, req.StartTime, req.EndTime)
	if appErr != nil {
		return appErr
	}

	var location *string
	if req.LocationName != "" {
		location = &req.LocationName
	}

	logger.Info("CalendarService:CreateEvent",
		"calendar_id", calendar.ID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
		"end_time", endTime,
		"recurrent", req.Recurrent,
	)

	if appErr := s.createOne(ctx, calendar.ID, day, startTime, endTime, location); appErr != nil {
		return appErr
	}

	if !req.Recurrent {
		return nil
	}

	logger.Info("CalendarService:CreateEvent:ExpandingRecurrence", "calendar_id", calendar.ID)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: day,
	})
	if err != nil {
		logger.Error("CalendarService:CreateEvent:NewRRule:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to expand recurrence", err)
	}

	windowEnd := day.AddDate(0, 0, recurrenceWindowDays)
	for _, occurrence := range rule.Between(day, windowEnd, false) {
		if appErr := s.createOne(ctx, calendar.ID, occurrence, startTime, endTime, location); appErr != nil {
			return appErr
		}
	}
	return nil
}

// createOne validates one slot against the events already on its day and
// persists it. The (calendar, day, start_time) unique constraint backstops
// the check under concurrent creates.
func (s *CalendarService) createOne(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string, location *string) *appErrors.AppError {
	newStart, _ := time.Parse(constants.TimeLayout, startTime)
	newEnd, _ := time.Parse(constants.TimeLayout, endTime)

	existing, err := s.events.ListByCalendarAndDay(ctx, calendarID, day)
	if err != nil {
		logger.Error("CalendarService:createOne:ListByCalendarAndDay:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load events", err)
	}
	for i := range existing {
		fixedStart, perr := time.Parse(constants.TimeLayout, existing[i].StartTime)
		if perr != nil {
			return appErrors.NewAppError(appErrors.ErrInternalServer, "stored event has malformed time", perr)
		}
		fixedEnd, perr := time.Parse(constants.TimeLayout, existing[i].EndTime)
		if perr != nil {
			return appErrors.NewAppError(appErrors.ErrInternalServer, "stored event has malformed time", perr)
		}
		if Overlaps(fixedStart, fixedEnd, newStart, newEnd) {
			return appErrors.NewAppError(appErrors.ErrInvalidInput,
				fmt.Sprintf("event on %s overlaps with another event", day.Format(constants.DayLayout)), nil)
		}
	}

	event := &entity.Event{
		CalendarID: calendarID,
		Day:        day,
		StartTime:  startTime,
		EndTime:    endTime,
		Location:   location,
		Free:       true,
	}
	if err := s.events.Create(ctx, event); err != nil {
		if isUniqueViolation(err) {
			// Lost a check-then-act race with a concurrent create.
			return appErrors.NewAppError(appErrors.ErrInvalidInput,
				fmt.Sprintf("event on %s overlaps with another event", day.Format(constants.DayLayout)), err)
		}
		logger.Error("CalendarService:createOne:Create:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to create event", err)
	}
	return nil
}

// DeleteEvent removes the slot matching the event key. With all set, it
// removes every slot on the calendar sharing the key's time range and
// weekday instead. Zero matches is not an error.
func (s *CalendarService) DeleteEvent(ctx context.Context, ownerID uuid.UUID, eventInfo string, all bool) *appErrors.AppError {
	calendar, appErr := s.GetCalendarByOwner(ctx, ownerID)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventInfo(eventInfo)
	if appErr != nil {
		return appErr
	}

	logger.Info("CalendarService:DeleteEvent",
		"calendar_id", calendar.ID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
		"end_time", endTime,
		"all", all,
	)

	if all {
		deleted, err := s.events.DeleteByWeekday(ctx, calendar.ID, day.Weekday(), startTime, endTime)
		if err != nil {
			logger.Error("CalendarService:DeleteEvent:DeleteByWeekday:Error", "error", err)
			return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to delete events", err)
		}
		logger.Info("CalendarService:DeleteEvent:WeeklyDeleted", "count", deleted)
		return nil
	}

	if err := s.events.DeleteByKey(ctx, calendar.ID, day, startTime, endTime); err != nil {
		logger.Error("CalendarService:DeleteEvent:DeleteByKey:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to delete event", err)
	}
	return nil
}

// AssignEvent hands a free slot on the owner's calendar to the client with
// the given identity number.
func (s *CalendarService) AssignEvent(ctx context.Context, ownerID uuid.UUID, identityNumber int64, eventInfo string) *appErrors.AppError {
	calendar, appErr := s.GetCalendarByOwner(ctx, ownerID)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventInfo(eventInfo)
	if appErr != nil {
		return appErr
	}

	logger.Info("CalendarService:AssignEvent",
		"calendar_id", calendar.ID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
		"identity_number", identityNumber,
	)

	event, appErr := s.lookupEvent(ctx, calendar.ID, day, startTime, endTime)
	if appErr != nil {
		return appErr
	}
	if event == nil {
		return appErrors.NewAppError(appErrors.ErrInvalidInput, "event not found", nil)
	}
	if !event.Free {
		return appErrors.NewAppError(appErrors.ErrInvalidInput, "event is already taken", nil)
	}

	client, clientErr := s.auth.GetClientByIdentityNumber(ctx, identityNumber)
	if clientErr != nil {
		return clientErr
	}

	return s.assign(ctx, event, client)
}

// BookEvent lets an authenticated client take a free slot on the calendar
// identified by slug.
func (s *CalendarService) BookEvent(ctx context.Context, clientID uuid.UUID, calendarSlug, eventInfo string) *appErrors.AppError {
	calendar, appErr := s.lookupCalendarBySlug(ctx, calendarSlug)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventInfo(eventInfo)
	if appErr != nil {
		return appErr
	}

	logger.Info("CalendarService:BookEvent",
		"calendar_id", calendar.ID,
		"client_id", clientID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
	)

	event, appErr := s.lookupEvent(ctx, calendar.ID, day, startTime, endTime)
	if appErr != nil {
		return appErr
	}
	if event == nil {
		return appErrors.NewAppError(appErrors.ErrInvalidInput, "event not found", nil)
	}
	if !event.Free {
		return appErrors.NewAppError(appErrors.ErrInvalidInput, "event is already taken", nil)
	}

	client, clientErr := s.auth.GetClientByID(ctx, clientID)
	if clientErr != nil {
		return clientErr
	}

	return s.assign(ctx, event, client)
}

func (s *CalendarService) assign(ctx context.Context, event *entity.Event, client *authEntity.Client) *appErrors.AppError {
	if err := s.events.SetAssignment(ctx, event.ID, &client.ID, false); err != nil {
		logger.Error("CalendarService:assign:SetAssignment:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to assign event", err)
	}
	event.ClientID = &client.ID
	event.Free = false

	if s.notifier != nil {
		s.notifier.EventAssigned(ctx, client.ID, client.Email, event)
	}
	return nil
}

// FreeEvent clears the slot's holder. It does not require the slot to be
// assigned, so repeating the call is harmless.
func (s *CalendarService) FreeEvent(ctx context.Context, ownerID uuid.UUID, eventInfo string) *appErrors.AppError {
	calendar, appErr := s.GetCalendarByOwner(ctx, ownerID)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventInfo(eventInfo)
	if appErr != nil {
		return appErr
	}

	logger.Info("CalendarService:FreeEvent",
		"calendar_id", calendar.ID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
	)

	event, appErr := s.lookupEvent(ctx, calendar.ID, day, startTime, endTime)
	if appErr != nil {
		return appErr
	}
	if event == nil {
		return appErrors.NewAppError(appErrors.ErrNotFound, "event not found", nil)
	}

	return s.free(ctx, event)
}

// CancelBooking lets a client release a slot they hold.
func (s *CalendarService) CancelBooking(ctx context.Context, clientID uuid.UUID, calendarSlug, eventInfo string) *appErrors.AppError {
	calendar, appErr := s.lookupCalendarBySlug(ctx, calendarSlug)
	if appErr != nil {
		return appErr
	}

	day, startTime, endTime, appErr := parseEventInfo(eventInfo)
	if appErr != nil {
		return appErr
	}

	event, appErr := s.lookupEvent(ctx, calendar.ID, day, startTime, endTime)
	if appErr != nil {
		return appErr
	}
	if event == nil {
		return appErrors.NewAppError(appErrors.ErrNotFound, "event not found", nil)
	}
	if event.ClientID == nil || *event.ClientID != clientID {
		return appErrors.NewAppError(appErrors.ErrForbidden, "event is not held by this client", nil)
	}

	logger.Info("CalendarService:CancelBooking",
		"calendar_id", calendar.ID,
		"client_id", clientID,
		"day", day.Format(constants.DayLayout),
		"start_time", startTime,
	)

	return s.free(ctx, event)
}

func (s *CalendarService) free(ctx context.Context, event *entity.Event) *appErrors.AppError {
	var (
		holderID    uuid.UUID
		holderEmail string
	)
	if event.ClientID != nil {
		holderID = *event.ClientID
		if client, appErr := s.auth.GetClientByID(ctx, *event.ClientID); appErr == nil {
			holderEmail = client.Email
		}
	}

	if err := s.events.SetAssignment(ctx, event.ID, nil, true); err != nil {
		logger.Error("CalendarService:free:SetAssignment:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to free event", err)
	}
	event.ClientID = nil
	event.Free = true

	if s.notifier != nil && holderEmail != "" {
		s.notifier.EventFreed(ctx, holderID, holderEmail, event)
	}
	return nil
}

// AvailableEvents returns the month's events visible to the principal: an
// owner sees everything on their calendar, a client sees the free slots of
// their owners' calendars plus the slots they hold.
func (s *CalendarService) AvailableEvents(ctx context.Context, principal authEntity.Principal, month, year int) ([]entity.Event, *appErrors.AppError) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewAppError(appErrors.ErrInvalidInput, "month must be between 1 and 12", nil)
	}

	if principal.IsOwner() {
		calendar, appErr := s.GetCalendarByOwner(ctx, principal.ID)
		if appErr != nil {
			return nil, appErr
		}
		events, err := s.events.List(ctx, calendar.ID, entity.EventFilter{Month: &month, Year: &year})
		if err != nil {
			logger.Error("CalendarService:AvailableEvents:List:Error", "error", err)
			return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load events", err)
		}
		return events, nil
	}

	events, err := s.events.ListForClientMonth(ctx, principal.ID, month, year)
	if err != nil {
		logger.Error("CalendarService:AvailableEvents:ListForClientMonth:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load events", err)
	}
	return events, nil
}

// PublicFreeEvents returns the free slots of the calendar behind a public
// booking page.
func (s *CalendarService) PublicFreeEvents(ctx context.Context, calendarSlug string, month, year int) ([]entity.Event, *appErrors.AppError) {
	calendar, appErr := s.lookupCalendarBySlug(ctx, calendarSlug)
	if appErr != nil {
		return nil, appErr
	}

	free := true
	events, err := s.events.List(ctx, calendar.ID, entity.EventFilter{Free: &free, Month: &month, Year: &year})
	if err != nil {
		logger.Error("CalendarService:PublicFreeEvents:List:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load events", err)
	}
	return events, nil
}

// GetEvents returns the owner's events narrowed by a field-equality
// filter.
func (s *CalendarService) GetEvents(ctx context.Context, ownerID uuid.UUID, filter entity.EventFilter) ([]entity.Event, *appErrors.AppError) {
	calendar, appErr := s.GetCalendarByOwner(ctx, ownerID)
	if appErr != nil {
		return nil, appErr
	}
	events, err := s.events.List(ctx, calendar.ID, filter)
	if err != nil {
		logger.Error("CalendarService:GetEvents:List:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load events", err)
	}
	return events, nil
}

func (s *CalendarService) lookupCalendarBySlug(ctx context.Context, calendarSlug string) (*entity.Calendar, *appErrors.AppError) {
	calendar, err := s.calendars.GetBySlug(ctx, calendarSlug)
	if err != nil {
		logger.Error("CalendarService:lookupCalendarBySlug:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up calendar", err)
	}
	if calendar == nil {
		return nil, appErrors.NewAppError(appErrors.ErrNotFound, "calendar not found", nil)
	}
	return calendar, nil
}

func (s *CalendarService) lookupEvent(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) (*entity.Event, *appErrors.AppError) {
	event, err := s.events.GetByKey(ctx, calendarID, day, startTime, endTime)
	if err != nil {
		logger.Error("CalendarService:lookupEvent:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up event", err)
	}
	return event, nil
}

// parseEventTimes validates and normalizes the day and time-of-day fields
// of an incoming event.
func parseEventTimes(dayStr, startStr, endStr string) (time.Time, string, string, *appErrors.AppError) {
	day, err := time.ParseInLocation(constants.DayLayout, dayStr, time.UTC)
	if err != nil {
		return time.Time{}, "", "", appErrors.NewAppError(appErrors.ErrInvalidInput,
			"day must be formatted as YYYY-MM-DD", err)
	}
	start, err := time.Parse(constants.TimeLayout, startStr)
	if err != nil {
		return time.Time{}, "", "", appErrors.NewAppError(appErrors.ErrInvalidInput,
			"start_time must be formatted as HH:MM", err)
	}
	end, err := time.Parse(constants.TimeLayout, endStr)
	if err != nil {
		return time.Time{}, "", "", appErrors.NewAppError(appErrors.ErrInvalidInput,
			"end_time must be formatted as HH:MM", err)
	}
	if !end.After(start) {
		return time.Time{}, "", "", appErrors.NewAppError(appErrors.ErrInvalidInput,
			"end time must be greater than start time", nil)
	}
	return day, start.Format(constants.TimeLayout), end.Format(constants.TimeLayout), nil
}

// parseEventInfo splits the "day|start_time|end_time" composite key used
// by delete/assign/cancel requests.
func parseEventInfo(eventInfo string) (time.Time, string, string, *appErrors.AppError) {
	parts := strings.Split(eventInfo, "|")
	if len(parts) != 3 {
		return time.Time{}, "", "", appErrors.NewAppError(appErrors.ErrInvalidInput,
			"event_info must be formatted as day|start_time|end_time", nil)
	}
	return parseEventTimes(parts[0], parts[1], parts[2])
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isUniqueViolationOn(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraint
}
