package api

import (
	"net/http"
	"strconv"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/Korolev2000/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	router.GET("/flights", h.search)
	router.GET("/flights/:flight_number", h.get)
	router.PUT("/flights/:flight_number/status", requireAuth, requireAdmin, h.updateStatus)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := repository.FlightFilter{
		DepartureAirport: c.Query("departure_location"),
		ArrivalAirport:   c.Query("arrival_location"),
		DatePrefix:       c.Query("date"),
		SortBy:           c.Query("sort_by"),
		SortDesc:         c.Query("sort_order") == "desc",
	}

	if raw := c.Query("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, domain.NewError(domain.ErrInvalidInput, "Invalid min_price"))
			return
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, domain.NewError(domain.ErrInvalidInput, "Invalid max_price"))
			return
		}
		filter.MaxPrice = &price
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("flight_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *FlightHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	// An unparsable body leaves Status empty, which the service
	// rejects along with every other value outside the enumeration.
	_ = c.ShouldBindJSON(&req)

	flightNumber := c.Param("flight_number")
	if err := h.service.UpdateStatus(c.Request.Context(), flightNumber, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight " + flightNumber + " status updated to '" + req.Status + "'"})
}
