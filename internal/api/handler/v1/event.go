package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/request"
	"github.com/huddleup-labs/huddleup-api/internal/api/handler/v1/response"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	ListOrganizedEvents(ctx context.Context, userID string) ([]domain.Event, error)
	ListSponsoredEvents(ctx context.Context, userID string) ([]domain.Event, error)
	ListParticipatingEvents(ctx context.Context, userID string) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, eventID, userID string, patch domain.EventPatch) (domain.Event, error)
	DeleteEvent(ctx context.Context, eventID, userID string) error
	FundEvent(ctx context.Context, eventID, sponsorID string, amount float64) (domain.Event, error)
	Participate(ctx context.Context, eventID, userID string) (domain.Event, error)
	Leave(ctx context.Context, eventID, userID string) (domain.Event, error)
	CompleteEvent(ctx context.Context, eventID, userID string) (domain.Event, error)
	CancelEvent(ctx context.Context, eventID, userID string) (domain.Event, error)
	ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error)
	GetSponsor(ctx context.Context, eventID string) (domain.Sponsor, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "event details"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       req.EventDate,
		Location:        req.Location,
		EventType:       req.EventType,
		OrganizerID:     user.ID,
		FundingRequired: req.FundingRequired,
		AirdropAmount:   req.AirdropAmount,
		BannerImage:     req.BannerImage,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidFundingRatio) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        status   query     string false "filter by status" Enums(draft, funded, completed, cancelled)
// @Success      200      {array}   domain.Event
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	status := domain.EventStatus(ctx.Query("status"))
	switch status {
	case "", domain.EventDraft, domain.EventFunded, domain.EventCompleted, domain.EventCancelled:
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), status)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListMyEvents godoc
// @Summary      List the authenticated user's events by role
// @Tags         events
// @Produce      json
// @Param        role     query     string true "relationship to the event" Enums(organizer, sponsor, participant)
// @Success      200      {array}   domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/mine [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListMyEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var events []domain.Event
	var err error

	switch role := ctx.Query("role"); role {
	case "organizer":
		events, err = h.svc.ListOrganizedEvents(ctx.Request.Context(), user.ID)
	case "sponsor":
		events, err = h.svc.ListSponsoredEvents(ctx.Request.Context(), user.ID)
	case "participant":
		events, err = h.svc.ListParticipatingEvents(ctx.Request.Context(), user.ID)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid role %q", role)))
		return
	}

	if err != nil {
		err = fmt.Errorf("v1.HandleListMyEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleUpdateEvent godoc
// @Summary      Update a draft event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Param        request  body      request.UpdateEventRequest true "fields to update"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), eventID, user.ID, domain.EventPatch{
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       req.EventDate,
		Location:        req.Location,
		EventType:       req.EventType,
		FundingRequired: req.FundingRequired,
		AirdropAmount:   req.AirdropAmount,
		BannerImage:     req.BannerImage,
	})
	if err != nil {
		renderEventErr(ctx, "v1.HandleUpdateEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete a draft event
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID, user.ID); err != nil {
		renderEventErr(ctx, "v1.HandleDeleteEvent", eventID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleFundEvent godoc
// @Summary      Fund a draft event in full
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Param        request  body      request.FundEventRequest true "funding amount"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/fund [post]
// @Security     BearerAuth
func (h *EventHandler) HandleFundEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	var req request.FundEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	funded, err := h.svc.FundEvent(ctx.Request.Context(), eventID, user.ID, req.Amount)
	if err != nil {
		renderEventErr(ctx, "v1.HandleFundEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, funded)
}

// HandleParticipate godoc
// @Summary      Join a funded event
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participate [post]
// @Security     BearerAuth
func (h *EventHandler) HandleParticipate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	joined, err := h.svc.Participate(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleParticipate", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, joined)
}

// HandleLeave godoc
// @Summary      Leave an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participate [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleLeave(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	left, err := h.svc.Leave(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleLeave", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, left)
}

// HandleCompleteEvent godoc
// @Summary      Mark a funded event as completed
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/complete [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCompleteEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	completed, err := h.svc.CompleteEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleCompleteEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, completed)
}

// HandleCancelEvent godoc
// @Summary      Cancel a draft or funded event
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/cancel [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCancelEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID := ctx.Param("eventID")

	cancelled, err := h.svc.CancelEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleCancelEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, cancelled)
}

// HandleListParticipants godoc
// @Summary      List an event's participants
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {array}   domain.Participant
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [get]
func (h *EventHandler) HandleListParticipants(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleListParticipants", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleGetSponsor godoc
// @Summary      Get an event's sponsor
// @Tags         events
// @Produce      json
// @Param        eventID  path      string true "event ID"
// @Success      200      {object}  domain.Sponsor
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/sponsor [get]
func (h *EventHandler) HandleGetSponsor(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	sponsor, err := h.svc.GetSponsor(ctx.Request.Context(), eventID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleGetSponsor", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, sponsor)
}

// renderEventErr maps the event domain errors onto HTTP statuses.
func renderEventErr(ctx *gin.Context, op, eventID string, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrNotOrganizer):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
	case errors.Is(err, service.ErrEventNotDraft),
		errors.Is(err, service.ErrEventNotFunded),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyParticipating),
		errors.Is(err, service.ErrNotParticipating),
		errors.Is(err, service.ErrAlreadySponsored),
		errors.Is(err, service.ErrWrongFundingAmount),
		errors.Is(err, service.ErrInvalidFundingRatio),
		errors.Is(err, service.ErrEmptyPatch):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
