package api

import (
	"net/http"

	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the registered-user listing. Password hashes
// are never serialized, the domain type hides them from JSON.
type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(router gin.IRouter) {
	router.GET("/users", h.list)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
