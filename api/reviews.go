package api

import (
	"net/http"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/service/reviews"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service reviews.ReviewUseCase
}

func NewReviewHandler(service reviews.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type addReviewRequest struct {
	Username string `json:"username" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Star     int    `json:"star" binding:"required"`
}

type updateReviewRequest struct {
	Username *string `json:"username"`
	Comment  *string `json:"comment"`
	Star     *int    `json:"star"`
}

func (h *ReviewHandler) Register(router gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	router.GET("/flights/reviews", h.listAll)
	router.GET("/flights/:flight_number/reviews", h.listForFlight)
	router.POST("/flights/:flight_number/reviews", requireAuth, h.add)
	router.PUT("/flights/:flight_number/reviews/:review_id", requireAuth, h.update)
	router.DELETE("/flights/:flight_number/reviews/:review_id", requireAuth, requireAdmin, h.delete)
}

func (h *ReviewHandler) listForFlight(c *gin.Context) {
	result, err := h.service.ListForFlight(c.Request.Context(), c.Param("flight_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) listAll(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) add(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Missing required fields"))
		return
	}

	review, err := h.service.Add(c.Request.Context(), c.Param("flight_number"), reviews.ReviewInput{
		Username: req.Username,
		Comment:  req.Comment,
		Star:     req.Star,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully", "review": review})
}

func (h *ReviewHandler) update(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Invalid request body"))
		return
	}

	err := h.service.Update(c.Request.Context(), c.Param("flight_number"), c.Param("review_id"), reviews.ReviewUpdate{
		Username: req.Username,
		Comment:  req.Comment,
		Star:     req.Star,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully"})
}

func (h *ReviewHandler) delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("flight_number"), c.Param("review_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
