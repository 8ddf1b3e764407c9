package api

import (
	"net/http"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/Korolev2000/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	PassengerName  string `json:"passenger_name" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	Email          string `json:"email" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	FlightNumber   string `json:"flight_number" binding:"required"`
	SeatClass      string `json:"seat_class" binding:"required"`
	ContactDetails string `json:"contact_details" binding:"required"`
}

// updateBookingRequest enumerates the only fields a booking update may
// touch. Nil means the field was absent from the request body.
type updateBookingRequest struct {
	PassengerName  *string `json:"passenger_name"`
	PassportNumber *string `json:"passport_number"`
	Email          *string `json:"email"`
	PhoneNumber    *string `json:"phone_number"`
	SeatClass      *string `json:"seat_class"`
	ContactDetails *string `json:"contact_details"`
}

func (h *BookingHandler) Register(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.POST("/bookings", requireAuth, h.create)
	router.GET("/bookings", requireAuth, h.list)
	router.GET("/bookings/:booking_id", requireAuth, h.get)
	router.PUT("/bookings/:booking_id", requireAuth, h.update)
	router.DELETE("/bookings/:booking_id", requireAuth, h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Missing required fields"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		PassengerName:  req.PassengerName,
		PassportNumber: req.PassportNumber,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		FlightNumber:   req.FlightNumber,
		SeatClass:      req.SeatClass,
		ContactDetails: req.ContactDetails,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Booking successful",
		"booking_id":        result.ID,
		"passenger_details": result,
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Invalid request body"))
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("booking_id"), repository.BookingUpdate{
		PassengerName:  req.PassengerName,
		PassportNumber: req.PassportNumber,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		SeatClass:      req.SeatClass,
		ContactDetails: req.ContactDetails,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": result})
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("booking_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
