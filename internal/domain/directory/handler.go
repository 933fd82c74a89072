package directory

import (
	"errors"
	"net/http"

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
	api.GET("/appointments/locations", h.ListLocations)
	api.GET("/appointments/doctors/:locationId", h.ListDoctorsByLocation)
	api.GET("/doctors/:id", h.GetDoctor)
}

func (h *Handler) ListLocations(c echo.Context) error {
	locations, err := h.svc.ListLocations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve locations")
	}
	if locations == nil {
		locations = []*Location{}
	}
	return c.JSON(http.StatusOK, locations)
}

func (h *Handler) ListDoctorsByLocation(c echo.Context) error {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid location id")
	}
	doctors, err := h.svc.ListDoctorsByLocation(c.Request().Context(), locationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve doctors")
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	doctor, err := h.svc.GetDoctor(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve doctor")
	}
	return c.JSON(http.StatusOK, doctor)
}
