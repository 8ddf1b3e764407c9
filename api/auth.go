package api

import (
	"net/http"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Admin    bool   `json:"admin"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

func (h *AuthHandler) Register(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.POST("/register", h.register)
	router.GET("/login", h.login)
	router.POST("/login", h.login)
	router.GET("/logout", requireAuth, h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Username and password are required"))
		return
	}

	session, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   session.Token,
		"user":    userResponse{Username: session.User.Username, Admin: session.User.Admin},
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewError(domain.ErrInvalidInput, "Username and password required"))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"user":  userResponse{Username: session.User.Username, Admin: session.User.Admin},
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	tokenString := c.GetString(ctxTokenKey)
	if err := h.service.Revoke(c.Request.Context(), tokenString); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
