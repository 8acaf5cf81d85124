package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
	"github.com/parkit/parking-system/internal/metrics"
)

// ParkingHandler handles HTTP requests for the parking lifecycle.
type ParkingHandler struct {
	service ports.ParkingService
}

func NewParkingHandler(service ports.ParkingService) *ParkingHandler {
	return &ParkingHandler{service: service}
}

// Entry handles POST /v1/parking/entry.
//
// @Summary      Admit a vehicle and allocate a spot
// @Tags         parking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      entryRequest  true  "Vehicle details"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/parking/entry [post]
func (h *ParkingHandler) Entry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.EntriesRejectedTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ProcessEntry(c.Request().Context(), ports.EntryInput{
		Category:  req.Category,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		metrics.EntriesRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	return c.JSON(http.StatusCreated, entryResponse{
		TicketID:          result.TicketID,
		SpotID:            result.SpotID,
		Category:          result.Category,
		VehicleID:         result.VehicleID,
		EntryTime:         result.EntryTime,
		ReturningCustomer: result.ReturningCustomer,
	})
}

// Exit handles POST /v1/parking/exit.
//
// @Summary      Release a vehicle and settle its fare
// @Tags         parking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      exitRequest  true  "Vehicle details"
// @Success      200   {object}  exitResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/parking/exit [post]
func (h *ParkingHandler) Exit(c echo.Context) error {
	var req exitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ProcessExit(c.Request().Context(), ports.ExitInput{
		VehicleID: req.VehicleID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, exitResponse{
		TicketID:        result.TicketID,
		SpotID:          result.SpotID,
		Category:        result.Category,
		VehicleID:       result.VehicleID,
		EntryTime:       result.EntryTime,
		ExitTime:        result.ExitTime,
		Price:           result.Price,
		DiscountApplied: result.DiscountApplied,
	})
}

// History handles GET /v1/parking/sessions/:vehicle_id.
//
// @Summary      List parking sessions for a vehicle
// @Tags         parking
// @Produce      json
// @Security     BearerAuth
// @Param        vehicle_id  path      string  true  "Vehicle registration"
// @Success      200         {object}  sessionHistoryResponse
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /v1/parking/sessions/{vehicle_id} [get]
func (h *ParkingHandler) History(c echo.Context) error {
	vehicleID := c.Param("vehicle_id")

	sessions, err := h.service.GetHistory(c.Request().Context(), vehicleID)
	if err != nil {
		return err
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionResponse{
			TicketID:  s.TicketID,
			SpotID:    s.SpotID,
			Category:  s.Category,
			EntryTime: s.EntryTime,
			ExitTime:  s.ExitTime,
			Price:     s.Price,
		})
	}

	return c.JSON(http.StatusOK, sessionHistoryResponse{
		VehicleID: vehicleID,
		Sessions:  out,
	})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoAvailableSpot):
		return "facility_full"
	case errors.Is(err, domain.ErrVehicleAlreadyParked):
		return "already_parked"
	case errors.Is(err, domain.ErrInvalidSelection), errors.Is(err, domain.ErrInvalidVehicleID):
		return "invalid_input"
	default:
		return "internal"
	}
}
