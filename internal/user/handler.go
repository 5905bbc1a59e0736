package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.LoginRequest true "Credentials"
// @Success      200 {object} user.AuthResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	u, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Errorf("Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to log in"})
		return
	}

	logger.Infof("Staff login: %s (%s)", u.Email, u.Role)
	c.JSON(http.StatusOK, AuthResponse{User: u, AccessToken: accessToken, RefreshToken: refreshToken})
}

// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RefreshRequest true "Refresh token"
// @Success      200 {object} user.RefreshResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	accessToken, u, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{User: u, AccessToken: accessToken})
}

// @Summary      Current staff profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.User
// @Failure      401 {object} api.ErrorResponse
// @Router       /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		logger.Errorf("Failed to load user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Create a staff account
// @Tags         admin,staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body user.CreateStaffRequest true "Account payload"
// @Success      201 {object} user.User
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/staff [post]
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.CreateStaff(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already in use"})
			return
		}
		logger.Errorf("Failed to create staff account: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create staff account"})
		return
	}

	logger.Infof("Staff account created: %s (%s)", u.Email, u.Role)
	c.JSON(http.StatusCreated, u)
}

// @Summary      List staff accounts
// @Tags         admin,staff
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} user.User
// @Router       /admin/staff [get]
func (h *Handler) ListStaff(c *gin.Context) {
	users, err := h.service.ListStaff(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list staff accounts: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list staff accounts"})
		return
	}

	c.JSON(http.StatusOK, users)
}
