package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parkit/parking-system/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue gate events.
type EventDispatcher interface {
	Enqueue(event ports.GateEventInput)
	EnqueueBatch(events []ports.GateEventInput)
}

// GateEventHandler handles gate event ingestion from barrier devices.
type GateEventHandler struct {
	dispatcher EventDispatcher
}

// NewGateEventHandler creates a GateEventHandler backed by the given dispatcher.
func NewGateEventHandler(dispatcher EventDispatcher) *GateEventHandler {
	return &GateEventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/gate-events — enqueues a single event, returns 202.
//
// @Summary      Ingest a single gate event
// @Tags         gate-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      gateEventRequest  true  "Gate event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/gate-events [post]
func (h *GateEventHandler) Receive(c echo.Context) error {
	var req gateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toGateEventInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/gate-events/batch — enqueues a batch, returns 202.
//
// @Summary      Ingest a batch of gate events
// @Tags         gate-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []gateEventRequest  true  "Array of gate events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/gate-events/batch [post]
func (h *GateEventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []gateEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.GateEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toGateEventInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}

func toGateEventInput(r gateEventRequest) ports.GateEventInput {
	return ports.GateEventInput{
		VehicleID: r.VehicleID,
		Direction: r.Direction,
		Selection: r.Selection,
		Timestamp: r.Timestamp,
		GateID:    r.GateID,
	}
}
