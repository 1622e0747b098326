package controller

import (
	"strconv"
	"time"

	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	authEntity "agenda-api/modules/auth/entity"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/mapper"
	"agenda-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service service.CalendarServiceInterface
	base    controller.BaseController
}

func NewCalendarController(service service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		service: service,
		base:    controller.NewBaseController(),
	}
}

// CreateCalendar creates the authenticated owner's calendar
// @Summary Create the owner's calendar
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCalendarRequest true "calendar payload"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/owner/calendar [post]
func (c *CalendarController) CreateCalendar(ctx echo.Context) error {
	principal, appErr := c.requireKind(ctx, authEntity.KindOwner)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.CreateCalendarRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	calendar, appErr := c.service.CreateCalendar(ctx.Request().Context(), principal.ID, req.Summary)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, mapper.ToCalendarResponse(calendar), "calendar created")
}

// CreateEvent adds a slot (or a weekly series) to the owner's calendar
// @Summary Create an event
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "event payload"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	principal, appErr := c.requireKind(ctx, authEntity.KindOwner)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.CreateEvent(ctx.Request().Context(), principal.ID, &req); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "event created")
}

// DeleteEvent removes one slot, or a whole weekly series
// @Summary Delete an event
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EventInfoRequest true "event key"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events/delete [post]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	principal, appErr := c.requireKind(ctx, authEntity.KindOwner)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.EventInfoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.DeleteEvent(ctx.Request().Context(), principal.ID, req.EventInfo, req.All); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "event deleted")
}

// AssignEvent hands a slot to a client by identity number (owner only)
// @Summary Assign an event to a client
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AssignEventRequest true "assignment payload"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events/assign [post]
func (c *CalendarController) AssignEvent(ctx echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil))
	}

	var req dto.AssignEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if principal.IsOwner() {
		if appErr := c.service.AssignEvent(ctx.Request().Context(), principal.ID, req.IdentityNumber, req.EventInfo); appErr != nil {
			return c.base.Error(ctx, appErr)
		}
		return c.base.Success(ctx, nil, "event assigned")
	}
	return c.base.Error(ctx, errors.NewAppError(errors.ErrForbidden, "only owners can assign events", nil))
}

// BookEvent lets a client take a free slot on a calendar
// @Summary Book a free event
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookEventRequest true "booking payload"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events/book [post]
func (c *CalendarController) BookEvent(ctx echo.Context) error {
	principal, appErr := c.requireKind(ctx, authEntity.KindClient)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.BookEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.BookEvent(ctx.Request().Context(), principal.ID, req.CalendarSlug, req.EventInfo); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "event booked")
}

// CancelEvent frees a slot: owners free any slot on their calendar,
// clients release a slot they hold
// @Summary Cancel/free an event
// @Tags calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookEventRequest true "cancel payload (calendar_slug required for clients)"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events/cancel [post]
func (c *CalendarController) CancelEvent(ctx echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil))
	}

	var req dto.BookEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	var appErr *errors.AppError
	if principal.IsOwner() {
		appErr = c.service.FreeEvent(ctx.Request().Context(), principal.ID, req.EventInfo)
	} else {
		appErr = c.service.CancelBooking(ctx.Request().Context(), principal.ID, req.CalendarSlug, req.EventInfo)
	}
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "event freed")
}

// AvailableEvents lists the month's events visible to the caller
// @Summary List available events for a month
// @Tags calendar
// @Security BearerAuth
// @Produce json
// @Param month_filter query int false "month (1-12), defaults to current"
// @Param year_filter query int false "year, defaults to current"
// @Success 200 {object} dto.EventListResponse
// @Router /private/calendar/events [get]
func (c *CalendarController) AvailableEvents(ctx echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil))
	}

	month, year := monthYearFilters(ctx)
	events, appErr := c.service.AvailableEvents(ctx.Request().Context(), principal, month, year)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, mapper.ToEventListResponse(events), "")
}

// PublicFreeEvents lists a calendar's free slots by slug, unauthenticated
// @Summary List free slots of a public calendar
// @Tags calendar
// @Produce json
// @Param slug path string true "calendar slug"
// @Param month_filter query int false "month (1-12), defaults to current"
// @Param year_filter query int false "year, defaults to current"
// @Success 200 {object} dto.EventListResponse
// @Router /public/calendars/{slug}/events [get]
func (c *CalendarController) PublicFreeEvents(ctx echo.Context) error {
	month, year := monthYearFilters(ctx)
	events, appErr := c.service.PublicFreeEvents(ctx.Request().Context(), ctx.Param("slug"), month, year)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, mapper.ToEventListResponse(events), "")
}

func (c *CalendarController) requireKind(ctx echo.Context, kind authEntity.PrincipalKind) (authEntity.Principal, *errors.AppError) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return authEntity.Principal{}, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil)
	}
	if principal.Kind != kind {
		return authEntity.Principal{}, errors.NewAppError(errors.ErrForbidden,
			"operation not allowed for this principal kind", nil)
	}
	return principal, nil
}

// monthYearFilters reads month_filter/year_filter, falling back to the
// current month and year.
func monthYearFilters(ctx echo.Context) (int, int) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := ctx.QueryParam("month_filter"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil {
			month = m
		}
	}
	if raw := ctx.QueryParam("year_filter"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil {
			year = y
		}
	}
	return month, year
}
