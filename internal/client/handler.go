package client

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create a client
// @Description  Admin-only: add a new client to the roster
// @Tags         admin,clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body client.CreateClientRequest true "Client payload"
// @Success      201 {object} client.Client
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/clients [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhoneTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Client with this phone already exists"})
		case errors.Is(err, ErrInvalidBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Birth date must be in YYYY-MM-DD format"})
		default:
			logger.Errorf("Failed to create client: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create client"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      List clients
// @Description  Optionally filtered by name, phone or email substring, status, and active membership expiration date
// @Tags         admin,clients
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Name, phone or email substring"
// @Param        status query string false "Client status" Enums(active, inactive, potential)
// @Param        expires_on query string false "Active membership end date (YYYY-MM-DD)"
// @Success      200 {array} client.Client
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/clients [get]
func (h *Handler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context(), c.Query("search"), c.Query("status"), c.Query("expires_on"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Status must be active, inactive or potential"})
		case errors.Is(err, ErrInvalidExpiryDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "expires_on must be in YYYY-MM-DD format"})
		default:
			logger.Errorf("Failed to list clients: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list clients"})
		}
		return
	}

	c.JSON(http.StatusOK, clients)
}

// @Summary      Get a client
// @Tags         admin,clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientID path int true "Client ID"
// @Success      200 {object} client.Client
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/clients/{clientID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load client"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// @Summary      Update a client
// @Tags         admin,clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        clientID path int true "Client ID"
// @Param        request body client.UpdateClientRequest true "Client payload"
// @Success      200 {object} client.Client
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/clients/{clientID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		case errors.Is(err, ErrPhoneTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Client with this phone already exists"})
		case errors.Is(err, ErrInvalidBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Birth date must be in YYYY-MM-DD format"})
		default:
			logger.Errorf("Failed to update client %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update client"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a client
// @Description  Refused while the client holds an active membership
// @Tags         admin,clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientID path int true "Client ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/clients/{clientID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		case errors.Is(err, ErrHasActiveMembership):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Cannot delete a client with an active membership"})
		case errors.Is(err, ErrHasLinkedRecords):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Cannot delete a client with payment or visit history"})
		default:
			logger.Errorf("Failed to delete client %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete client"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Client deleted"})
}
