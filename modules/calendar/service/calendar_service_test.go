package service

import (
	"context"
	"testing"
	"time"

	"agenda-api/core/constants"
	appErrors "agenda-api/core/errors"
	authDto "agenda-api/modules/auth/dto"
	authEntity "agenda-api/modules/auth/entity"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendarRepo struct {
	calendars []*entity.Calendar
}

func (f *fakeCalendarRepo) Create(_ context.Context, calendar *entity.Calendar) error {
	for _, existing := range f.calendars {
		if existing.OwnerID == calendar.OwnerID {
			return &pq.Error{Code: "23505", Constraint: "calendars_owner_id_key"}
		}
		if existing.Slug == calendar.Slug {
			return &pq.Error{Code: "23505", Constraint: "calendars_slug_key"}
		}
	}
	calendar.ID = uuid.New()
	stored := *calendar
	f.calendars = append(f.calendars, &stored)
	return nil
}

func (f *fakeCalendarRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*entity.Calendar, error) {
	for _, c := range f.calendars {
		if c.OwnerID == ownerID {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCalendarRepo) GetBySlug(_ context.Context, slug string) (*entity.Calendar, error) {
	for _, c := range f.calendars {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

type fakeEventRepo struct {
	events []*entity.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	for _, existing := range f.events {
		if existing.CalendarID == event.CalendarID &&
			existing.Day.Equal(event.Day) &&
			existing.StartTime == event.StartTime {
			return &pq.Error{Code: "23505", Constraint: "events_calendar_day_start_key"}
		}
	}
	event.ID = uuid.New()
	stored := *event
	f.events = append(f.events, &stored)
	return nil
}

func (f *fakeEventRepo) ListByCalendarAndDay(_ context.Context, calendarID uuid.UUID, day time.Time) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.CalendarID == calendarID && e.Day.Equal(day) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByKey(_ context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) (*entity.Event, error) {
	for _, e := range f.events {
		if e.CalendarID == calendarID && e.Day.Equal(day) &&
			e.StartTime == startTime && e.EndTime == endTime {
			out := *e
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) DeleteByKey(_ context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) error {
	kept := f.events[:0]
	for _, e := range f.events {
		match := e.CalendarID == calendarID && e.Day.Equal(day) &&
			e.StartTime == startTime && e.EndTime == endTime
		if !match {
			kept = append(kept, e)
		}
	}
	f.events = kept
	return nil
}

func (f *fakeEventRepo) DeleteByWeekday(_ context.Context, calendarID uuid.UUID, weekday time.Weekday, startTime, endTime string) (int64, error) {
	var deleted int64
	kept := f.events[:0]
	for _, e := range f.events {
		match := e.CalendarID == calendarID && e.Day.Weekday() == weekday &&
			e.StartTime == startTime && e.EndTime == endTime
		if match {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return deleted, nil
}

func (f *fakeEventRepo) List(_ context.Context, calendarID uuid.UUID, filter entity.EventFilter) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.CalendarID != calendarID {
			continue
		}
		if filter.Free != nil && e.Free != *filter.Free {
			continue
		}
		if filter.Day != nil && !e.Day.Equal(*filter.Day) {
			continue
		}
		if filter.StartTime != nil && e.StartTime != *filter.StartTime {
			continue
		}
		if filter.Month != nil && int(e.Day.Month()) != *filter.Month {
			continue
		}
		if filter.Year != nil && e.Day.Year() != *filter.Year {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListForClientMonth(_ context.Context, clientID uuid.UUID, month, year int) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if int(e.Day.Month()) != month || e.Day.Year() != year {
			continue
		}
		if e.Free || (e.ClientID != nil && *e.ClientID == clientID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SetAssignment(_ context.Context, eventID uuid.UUID, clientID *uuid.UUID, free bool) error {
	for _, e := range f.events {
		if e.ID == eventID {
			e.ClientID = clientID
			e.Free = free
			return nil
		}
	}
	return nil
}

type fakeAuthService struct {
	clients []*authEntity.Client
}

func (f *fakeAuthService) Register(context.Context, *authDto.RegisterRequest) *appErrors.AppError {
	panic("not used in these tests")
}

func (f *fakeAuthService) Login(context.Context, *authDto.LoginRequest) (*authDto.LoginResponse, *appErrors.AppError) {
	panic("not used in these tests")
}

func (f *fakeAuthService) Logout(context.Context, string) *appErrors.AppError {
	panic("not used in these tests")
}

func (f *fakeAuthService) ValidatePrincipalToken(context.Context, string) (*authEntity.Principal, *appErrors.AppError) {
	panic("not used in these tests")
}

func (f *fakeAuthService) GetClientByIdentityNumber(_ context.Context, identityNumber int64) (*authEntity.Client, *appErrors.AppError) {
	for _, c := range f.clients {
		if c.IdentityNumber == identityNumber {
			return c, nil
		}
	}
	return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
}

func (f *fakeAuthService) GetClientByID(_ context.Context, id uuid.UUID) (*authEntity.Client, *appErrors.AppError) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
}

func (f *fakeAuthService) GetClientByEmail(_ context.Context, email string) (*authEntity.Client, *appErrors.AppError) {
	for _, c := range f.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
}

type notifierCall struct {
	clientID uuid.UUID
	email    string
	assigned bool
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) EventAssigned(_ context.Context, clientID uuid.UUID, clientEmail string, _ *entity.Event) {
	f.calls = append(f.calls, notifierCall{clientID: clientID, email: clientEmail, assigned: true})
}

func (f *fakeNotifier) EventFreed(_ context.Context, clientID uuid.UUID, clientEmail string, _ *entity.Event) {
	f.calls = append(f.calls, notifierCall{clientID: clientID, email: clientEmail, assigned: false})
}

type testHarness struct {
	service   *CalendarService
	calendars *fakeCalendarRepo
	events    *fakeEventRepo
	auth      *fakeAuthService
	notifier  *fakeNotifier
	ownerID   uuid.UUID
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		calendars: &fakeCalendarRepo{},
		events:    &fakeEventRepo{},
		auth:      &fakeAuthService{},
		notifier:  &fakeNotifier{},
		ownerID:   uuid.New(),
	}
	h.service = NewCalendarService(h.calendars, h.events, h.auth, h.notifier)
	return h
}

func (h *testHarness) withCalendar(t *testing.T) *entity.Calendar {
	t.Helper()
	calendar, appErr := h.service.CreateCalendar(context.Background(), h.ownerID, "Consulting hours")
	require.Nil(t, appErr)
	return calendar
}

func (h *testHarness) withClient(email string, identityNumber int64) *authEntity.Client {
	client := &authEntity.Client{
		Email:          email,
		IdentityNumber: identityNumber,
	}
	client.ID = uuid.New()
	h.auth.clients = append(h.auth.clients, client)
	return client
}

func TestCreateCalendar(t *testing.T) {
	t.Run("creates with slug from summary", func(t *testing.T) {
		h := newHarness(t)
		calendar, appErr := h.service.CreateCalendar(context.Background(), h.ownerID, "Dr. García Clinic")
		require.Nil(t, appErr)
		assert.Equal(t, "dr-garcia-clinic", calendar.Slug)
	})

	t.Run("rejects empty summary", func(t *testing.T) {
		h := newHarness(t)
		_, appErr := h.service.CreateCalendar(context.Background(), h.ownerID, "   ")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("rejects second calendar for the same owner", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		_, appErr := h.service.CreateCalendar(context.Background(), h.ownerID, "Another one")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrAlreadyExists, appErr.Code)
	})

	t.Run("regenerates a taken slug", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		otherOwner := uuid.New()
		calendar, appErr := h.service.CreateCalendar(context.Background(), otherOwner, "Consulting hours")
		require.Nil(t, appErr)
		assert.NotEqual(t, "consulting-hours", calendar.Slug)
		assert.Contains(t, calendar.Slug, "consulting-hours")
	})
}

func TestCreateEvent(t *testing.T) {
	t.Run("creates a single slot", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		})
		require.Nil(t, appErr)
		require.Len(t, h.events.events, 1)
		assert.True(t, h.events.events[0].Free)
	})

	t.Run("rejects end not after start", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "16:30", EndTime: "16:30",
		})
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
		assert.Empty(t, h.events.events)
	})

	t.Run("rejects malformed day", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "01/01/2100", StartTime: "15:30", EndTime: "16:30",
		})
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("rejects an overlapping slot on the same day", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "16:00", EndTime: "17:00",
		})
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
		assert.Len(t, h.events.events, 1)
	})

	t.Run("rejects a slot touching an existing one", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "16:30", EndTime: "17:30",
		})
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("allows the same slot on a different day", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-02", StartTime: "15:30", EndTime: "16:30",
		}))
		assert.Len(t, h.events.events, 2)
	})

	t.Run("expands a weekly series across a year", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30", Recurrent: true,
		})
		require.Nil(t, appErr)

		// Initial slot plus 52 weekly occurrences strictly inside the
		// 365-day window.
		assert.Len(t, h.events.events, 53)

		day0, _ := time.ParseInLocation(constants.DayLayout, "2100-01-01", time.UTC)
		last := h.events.events[len(h.events.events)-1]
		assert.True(t, last.Day.Equal(day0.AddDate(0, 0, 364)))
		for _, e := range h.events.events {
			assert.Equal(t, time.Friday, e.Day.Weekday())
			assert.Equal(t, "15:30", e.StartTime)
			assert.Equal(t, "16:30", e.EndTime)
		}
	})

	t.Run("a blocked occurrence keeps earlier ones and aborts the rest", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		// Third occurrence of the series collides with this slot.
		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-15", StartTime: "16:00", EndTime: "17:00",
		}))

		appErr := h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30", Recurrent: true,
		})
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)

		// The pre-existing slot plus the two occurrences created before
		// the collision.
		assert.Len(t, h.events.events, 3)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("deletes one slot by key", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30", Recurrent: true,
		}))
		before := len(h.events.events)

		appErr := h.service.DeleteEvent(context.Background(), h.ownerID, "2100-01-08|15:30|16:30", false)
		require.Nil(t, appErr)
		assert.Len(t, h.events.events, before-1)
	})

	t.Run("deletes the whole weekly series", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30", Recurrent: true,
		}))
		// Same weekday, different time range: must survive.
		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-08", StartTime: "09:00", EndTime: "10:00",
		}))

		appErr := h.service.DeleteEvent(context.Background(), h.ownerID, "2100-01-15|15:30|16:30", true)
		require.Nil(t, appErr)
		require.Len(t, h.events.events, 1)
		assert.Equal(t, "09:00", h.events.events[0].StartTime)
	})

	t.Run("deleting a missing slot is not an error", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.DeleteEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30", false)
		assert.Nil(t, appErr)
	})

	t.Run("rejects a malformed event key", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.DeleteEvent(context.Background(), h.ownerID, "2100-01-01|15:30", false)
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("fails without a calendar", func(t *testing.T) {
		h := newHarness(t)
		appErr := h.service.DeleteEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30", false)
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrNotFound, appErr.Code)
	})
}

func TestAssignEvent(t *testing.T) {
	t.Run("assigns a free slot and notifies the client", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		client := h.withClient("ana@example.com", 12345678)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))

		appErr := h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30")
		require.Nil(t, appErr)

		event := h.events.events[0]
		assert.False(t, event.Free)
		require.NotNil(t, event.ClientID)
		assert.Equal(t, client.ID, *event.ClientID)

		require.Len(t, h.notifier.calls, 1)
		assert.True(t, h.notifier.calls[0].assigned)
		assert.Equal(t, "ana@example.com", h.notifier.calls[0].email)
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		h.withClient("ana@example.com", 12345678)
		h.withClient("bob@example.com", 87654321)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30"))

		appErr := h.service.AssignEvent(context.Background(), h.ownerID, 87654321, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("rejects a missing slot", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		h.withClient("ana@example.com", 12345678)

		appErr := h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("rejects an unknown client", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))

		appErr := h.service.AssignEvent(context.Background(), h.ownerID, 99999999, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrNotFound, appErr.Code)
	})
}

func TestFreeEvent(t *testing.T) {
	t.Run("frees an assigned slot and notifies the previous holder", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		client := h.withClient("ana@example.com", 12345678)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30"))

		appErr := h.service.FreeEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30")
		require.Nil(t, appErr)

		event := h.events.events[0]
		assert.True(t, event.Free)
		assert.Nil(t, event.ClientID)

		require.Len(t, h.notifier.calls, 2)
		assert.False(t, h.notifier.calls[1].assigned)
		assert.Equal(t, client.ID, h.notifier.calls[1].clientID)
	})

	t.Run("freeing an already free slot is harmless", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))

		require.Nil(t, h.service.FreeEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30"))
		require.Nil(t, h.service.FreeEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30"))
		assert.True(t, h.events.events[0].Free)
		assert.Empty(t, h.notifier.calls)
	})

	t.Run("fails on a missing slot", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)

		appErr := h.service.FreeEvent(context.Background(), h.ownerID, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrNotFound, appErr.Code)
	})
}

func TestBookEvent(t *testing.T) {
	t.Run("books a free slot through the calendar slug", func(t *testing.T) {
		h := newHarness(t)
		calendar := h.withCalendar(t)
		client := h.withClient("ana@example.com", 12345678)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))

		appErr := h.service.BookEvent(context.Background(), client.ID, calendar.Slug, "2100-01-01|15:30|16:30")
		require.Nil(t, appErr)
		assert.False(t, h.events.events[0].Free)
	})

	t.Run("rejects an unknown calendar", func(t *testing.T) {
		h := newHarness(t)
		client := h.withClient("ana@example.com", 12345678)

		appErr := h.service.BookEvent(context.Background(), client.ID, "no-such-calendar", "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrNotFound, appErr.Code)
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		h := newHarness(t)
		calendar := h.withCalendar(t)
		first := h.withClient("ana@example.com", 12345678)
		second := h.withClient("bob@example.com", 87654321)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.BookEvent(context.Background(), first.ID, calendar.Slug, "2100-01-01|15:30|16:30"))

		appErr := h.service.BookEvent(context.Background(), second.ID, calendar.Slug, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("the holder can release their slot", func(t *testing.T) {
		h := newHarness(t)
		calendar := h.withCalendar(t)
		client := h.withClient("ana@example.com", 12345678)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.BookEvent(context.Background(), client.ID, calendar.Slug, "2100-01-01|15:30|16:30"))

		appErr := h.service.CancelBooking(context.Background(), client.ID, calendar.Slug, "2100-01-01|15:30|16:30")
		require.Nil(t, appErr)
		assert.True(t, h.events.events[0].Free)
	})

	t.Run("another client cannot release the slot", func(t *testing.T) {
		h := newHarness(t)
		calendar := h.withCalendar(t)
		holder := h.withClient("ana@example.com", 12345678)
		intruder := h.withClient("bob@example.com", 87654321)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.BookEvent(context.Background(), holder.ID, calendar.Slug, "2100-01-01|15:30|16:30"))

		appErr := h.service.CancelBooking(context.Background(), intruder.ID, calendar.Slug, "2100-01-01|15:30|16:30")
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrForbidden, appErr.Code)
		assert.False(t, h.events.events[0].Free)
	})
}

func TestAvailableEvents(t *testing.T) {
	t.Run("owner sees all slots of the month", func(t *testing.T) {
		h := newHarness(t)
		h.withCalendar(t)
		h.withClient("ana@example.com", 12345678)

		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
			Day: "2100-02-01", StartTime: "15:30", EndTime: "16:30",
		}))
		require.Nil(t, h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30"))

		principal := authEntity.Principal{ID: h.ownerID, Kind: authEntity.KindOwner}
		events, appErr := h.service.AvailableEvents(context.Background(), principal, 1, 2100)
		require.Nil(t, appErr)
		assert.Len(t, events, 1)
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		h := newHarness(t)
		principal := authEntity.Principal{ID: h.ownerID, Kind: authEntity.KindOwner}
		_, appErr := h.service.AvailableEvents(context.Background(), principal, 13, 2100)
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidInput, appErr.Code)
	})
}

func TestPublicFreeEvents(t *testing.T) {
	h := newHarness(t)
	calendar := h.withCalendar(t)
	h.withClient("ana@example.com", 12345678)

	require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
		Day: "2100-01-01", StartTime: "15:30", EndTime: "16:30",
	}))
	require.Nil(t, h.service.CreateEvent(context.Background(), h.ownerID, &dto.CreateEventRequest{
		Day: "2100-01-02", StartTime: "15:30", EndTime: "16:30",
	}))
	require.Nil(t, h.service.AssignEvent(context.Background(), h.ownerID, 12345678, "2100-01-01|15:30|16:30"))

	events, appErr := h.service.PublicFreeEvents(context.Background(), calendar.Slug, 1, 2100)
	require.Nil(t, appErr)
	require.Len(t, events, 1)
	assert.True(t, events[0].Free)
}
