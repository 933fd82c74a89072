package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments/available-slots", h.AvailableSlots)
	api.POST("/appointments/book", h.Book)
}

type slotResponse struct {
	Time        string `json:"time"`
	Display     string `json:"display"`
	IsAvailable bool   `json:"is_available"`
	Remaining   int    `json:"remaining"`
}

type availableSlotsResponse struct {
	Date                 string         `json:"date"`
	LocationID           uuid.UUID      `json:"location_id"`
	Slots                []slotResponse `json:"slots"`
	RemainingSlotsForDay int            `json:"remaining_slots_for_day"`
}

// AvailableSlots handles GET /appointments/available-slots.
func (h *Handler) AvailableSlots(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	locationID, err := uuid.Parse(c.QueryParam("location_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid location_id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
	}

	day, err := h.svc.ListAvailability(c.Request().Context(), doctorID, locationID, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve available slots")
	}

	resp := availableSlotsResponse{
		Date:                 day.Date.Format("2006-01-02"),
		LocationID:           day.LocationID,
		Slots:                make([]slotResponse, 0, len(day.Slots)),
		RemainingSlotsForDay: day.RemainingSlotsForDay,
	}
	for _, s := range day.Slots {
		resp.Slots = append(resp.Slots, slotResponse{
			Time:        s.Time.String(),
			Display:     s.Display,
			IsAvailable: s.IsAvailable,
			Remaining:   s.Remaining,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type bookResponse struct {
	Success              bool      `json:"success"`
	Message              string    `json:"message"`
	ReferenceNumber      string    `json:"reference_number,omitempty"`
	AppointmentID        uuid.UUID `json:"appointment_id,omitempty"`
	RemainingSlotsForDay int       `json:"remaining_slots_for_day,omitempty"`
}

// Book handles POST /appointments/book.
//
// Failure statuses keep the three user-facing cases distinct: 400 for
// malformed input, 404 when the time is not offered at all, 409 when another
// patient got there first.
func (h *Handler) Book(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.Book(c.Request().Context(), &req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrInvalidSlot):
			return echo.NewHTTPError(http.StatusNotFound, ErrInvalidSlot.Error())
		case errors.Is(err, ErrSlotTaken):
			return echo.NewHTTPError(http.StatusConflict, ErrSlotTaken.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to book appointment")
		}
	}

	return c.JSON(http.StatusCreated, bookResponse{
		Success:              true,
		Message:              "appointment booked successfully",
		ReferenceNumber:      result.ReferenceNumber,
		AppointmentID:        result.AppointmentID,
		RemainingSlotsForDay: result.RemainingSlotsForDay,
	})
}
