package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
)

type stubParkingService struct {
	entryFn   func(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error)
	exitFn    func(ctx context.Context, in ports.ExitInput) (*ports.ExitResult, error)
	historyFn func(ctx context.Context, vehicleID string) ([]ports.SessionView, error)
}

func (s *stubParkingService) ProcessEntry(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
	return s.entryFn(ctx, in)
}

func (s *stubParkingService) ProcessExit(ctx context.Context, in ports.ExitInput) (*ports.ExitResult, error) {
	return s.exitFn(ctx, in)
}

func (s *stubParkingService) GetHistory(ctx context.Context, vehicleID string) ([]ports.SessionView, error) {
	return s.historyFn(ctx, vehicleID)
}

func newParkingContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestParkingHandler_Entry_Success(t *testing.T) {
	entryTime := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	stub := &stubParkingService{
		entryFn: func(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
			if in.Category != "CAR" || in.VehicleID != "ABC-123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.EntryResult{
				TicketID:  "t1",
				SpotID:    1,
				Category:  "CAR",
				VehicleID: "ABC-123",
				EntryTime: entryTime,
			}, nil
		},
	}
	h := NewParkingHandler(stub)

	c, rec := newParkingContext(t, http.MethodPost, "/v1/parking/entry",
		`{"category":"CAR","vehicle_id":"ABC-123"}`)

	if err := h.Entry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TicketID != "t1" || resp.SpotID != 1 || resp.Category != "CAR" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.EntryTime.Equal(entryTime) {
		t.Fatalf("expected entry time %v, got %v", entryTime, resp.EntryTime)
	}
}

func TestParkingHandler_Entry_InvalidCategory(t *testing.T) {
	stub := &stubParkingService{
		entryFn: func(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewParkingHandler(stub)

	c, _ := newParkingContext(t, http.MethodPost, "/v1/parking/entry",
		`{"category":"TRUCK","vehicle_id":"ABC-123"}`)

	err := h.Entry(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400 error, got %v", err)
	}
}

func TestParkingHandler_Entry_MissingVehicleID(t *testing.T) {
	stub := &stubParkingService{
		entryFn: func(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewParkingHandler(stub)

	c, _ := newParkingContext(t, http.MethodPost, "/v1/parking/entry", `{"category":"CAR"}`)

	err := h.Entry(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected HTTP 400 error, got %v", err)
	}
}

func TestParkingHandler_Entry_FacilityFull(t *testing.T) {
	stub := &stubParkingService{
		entryFn: func(ctx context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
			return nil, domain.ErrNoAvailableSpot
		},
	}
	h := NewParkingHandler(stub)

	c, _ := newParkingContext(t, http.MethodPost, "/v1/parking/entry",
		`{"category":"BIKE","vehicle_id":"BKE-001"}`)

	err := h.Entry(c)
	if !errors.Is(err, domain.ErrNoAvailableSpot) {
		t.Fatalf("expected ErrNoAvailableSpot, got %v", err)
	}
}

func TestParkingHandler_Exit_Success(t *testing.T) {
	entryTime := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	exitTime := entryTime.Add(2 * time.Hour)
	stub := &stubParkingService{
		exitFn: func(ctx context.Context, in ports.ExitInput) (*ports.ExitResult, error) {
			if in.VehicleID != "ABC-123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ExitResult{
				TicketID:        "t1",
				SpotID:          1,
				Category:        "CAR",
				VehicleID:       "ABC-123",
				EntryTime:       entryTime,
				ExitTime:        exitTime,
				Price:           3.0,
				DiscountApplied: false,
			}, nil
		},
	}
	h := NewParkingHandler(stub)

	c, rec := newParkingContext(t, http.MethodPost, "/v1/parking/exit", `{"vehicle_id":"ABC-123"}`)

	if err := h.Exit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp exitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Price != 3.0 || resp.DiscountApplied {
		t.Fatalf("unexpected fare: %+v", resp)
	}
}

func TestParkingHandler_Exit_NoOpenSession(t *testing.T) {
	stub := &stubParkingService{
		exitFn: func(ctx context.Context, in ports.ExitInput) (*ports.ExitResult, error) {
			return nil, domain.ErrNoOpenSession
		},
	}
	h := NewParkingHandler(stub)

	c, _ := newParkingContext(t, http.MethodPost, "/v1/parking/exit", `{"vehicle_id":"GHOST-1"}`)

	err := h.Exit(c)
	if !errors.Is(err, domain.ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession, got %v", err)
	}
}

func TestParkingHandler_History_Success(t *testing.T) {
	entryTime := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	exitTime := entryTime.Add(time.Hour)
	stub := &stubParkingService{
		historyFn: func(ctx context.Context, vehicleID string) ([]ports.SessionView, error) {
			if vehicleID != "ABC-123" {
				t.Fatalf("unexpected vehicle id: %s", vehicleID)
			}
			return []ports.SessionView{
				{TicketID: "t2", SpotID: 1, Category: "CAR", EntryTime: entryTime.Add(3 * time.Hour)},
				{TicketID: "t1", SpotID: 1, Category: "CAR", EntryTime: entryTime, ExitTime: &exitTime, Price: 1.5},
			}, nil
		},
	}
	h := NewParkingHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/v1/parking/sessions/ABC-123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/parking/sessions/:vehicle_id")
	c.SetParamNames("vehicle_id")
	c.SetParamValues("ABC-123")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionHistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.VehicleID != "ABC-123" || len(resp.Sessions) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Sessions[0].TicketID != "t2" || resp.Sessions[1].Price != 1.5 {
		t.Fatalf("unexpected sessions: %+v", resp.Sessions)
	}
	if resp.Sessions[0].ExitTime != nil {
		t.Fatalf("open session should have no exit time")
	}
}

func TestParkingHandler_History_Empty(t *testing.T) {
	stub := &stubParkingService{
		historyFn: func(ctx context.Context, vehicleID string) ([]ports.SessionView, error) {
			return nil, nil
		},
	}
	h := NewParkingHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/parking/sessions/NEW-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/parking/sessions/:vehicle_id")
	c.SetParamNames("vehicle_id")
	c.SetParamValues("NEW-1")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp sessionHistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Sessions) != 0 {
		t.Fatalf("expected empty history, got %+v", resp.Sessions)
	}
}
