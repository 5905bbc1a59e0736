package membership

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

// @Summary      Create a membership type
// @Tags         admin,membership-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body membership.TypeRequest true "Type payload"
// @Success      201 {object} membership.MembershipType
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/membership-types [post]
func (h *Handler) CreateType(c *gin.Context) {
	var req TypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	mt, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Failed to create membership type: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create membership type"})
		return
	}

	c.JSON(http.StatusCreated, mt)
}

// @Summary      List membership types
// @Tags         admin,membership-types
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Only active types"
// @Success      200 {array} membership.MembershipType
// @Router       /admin/membership-types [get]
func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		logger.Errorf("Failed to list membership types: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list membership types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

// @Summary      Get a membership type
// @Tags         admin,membership-types
// @Produce      json
// @Security     BearerAuth
// @Param        typeID path int true "Membership type ID"
// @Success      200 {object} membership.MembershipType
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/membership-types/{typeID} [get]
func (h *Handler) GetType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership type ID"})
		return
	}

	mt, err := h.service.GetType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load membership type"})
		return
	}

	c.JSON(http.StatusOK, mt)
}

// @Summary      Update a membership type
// @Tags         admin,membership-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        typeID path int true "Membership type ID"
// @Param        request body membership.TypeRequest true "Type payload"
// @Success      200 {object} membership.MembershipType
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/membership-types/{typeID} [put]
func (h *Handler) UpdateType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership type ID"})
		return
	}

	var req TypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	mt, err := h.service.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership type not found"})
			return
		}
		logger.Errorf("Failed to update membership type %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update membership type"})
		return
	}

	c.JSON(http.StatusOK, mt)
}

// @Summary      Delete a membership type
// @Description  Refused while memberships reference the type
// @Tags         admin,membership-types
// @Produce      json
// @Security     BearerAuth
// @Param        typeID path int true "Membership type ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/membership-types/{typeID} [delete]
func (h *Handler) DeleteType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership type ID"})
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership type not found"})
		case errors.Is(err, ErrTypeInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Membership type is in use"})
		default:
			logger.Errorf("Failed to delete membership type %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete membership type"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Membership type deleted"})
}

// @Summary      Sell a membership
// @Description  Deactivates any previous active membership, records the payment and activates the client, atomically
// @Tags         admin,memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body membership.SellRequest true "Sale payload"
// @Success      201 {object} membership.SellResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/memberships/sell [post]
func (h *Handler) Sell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Sell(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership type not found"})
		case errors.Is(err, ErrClientNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		case errors.Is(err, ErrAmountBelowPrice):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Amount cannot be below the membership price"})
		case errors.Is(err, ErrInvalidStartDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Start date must be in YYYY-MM-DD format"})
		default:
			logger.Errorf("Failed to sell membership to client %d: %v", req.ClientID, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to sell membership"})
		}
		return
	}

	logger.Infof("Membership sold: client=%d type=%s amount_cents=%d", req.ClientID, result.Type.Name, req.AmountCents)
	c.JSON(http.StatusCreated, result)
}

// @Summary      Freeze a membership
// @Description  Stores the freeze window and extends the end date by its day count
// @Tags         admin,memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        membershipID path int true "Membership ID"
// @Param        request body membership.FreezeRequest true "Freeze payload"
// @Success      201 {object} membership.Freeze
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/memberships/{membershipID}/freeze [post]
func (h *Handler) Freeze(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("membershipID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	var req FreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	frozen, err := h.service.FreezeMembership(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMembershipNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership not found or not active"})
		case errors.Is(err, ErrFreezePeriodInvalid):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Freeze period must be longer than 0 days"})
		case errors.Is(err, ErrInvalidFreezeDates):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Freeze dates must be in YYYY-MM-DD format"})
		default:
			logger.Errorf("Failed to freeze membership %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to freeze membership"})
		}
		return
	}

	c.JSON(http.StatusCreated, frozen)
}

// @Summary      List memberships
// @Tags         admin,memberships
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} membership.MembershipWithDetails
// @Router       /admin/memberships [get]
func (h *Handler) ListAll(c *gin.Context) {
	memberships, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list memberships: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// @Summary      List a client's memberships
// @Tags         admin,memberships
// @Produce      json
// @Security     BearerAuth
// @Param        clientID path int true "Client ID"
// @Success      200 {array} membership.Membership
// @Router       /admin/clients/{clientID}/memberships [get]
func (h *Handler) ListByClient(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
		return
	}

	memberships, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		logger.Errorf("Failed to list memberships for client %d: %v", clientID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// @Summary      List a membership's freezes
// @Tags         admin,memberships
// @Produce      json
// @Security     BearerAuth
// @Param        membershipID path int true "Membership ID"
// @Success      200 {array} membership.Freeze
// @Router       /admin/memberships/{membershipID}/freezes [get]
func (h *Handler) ListFreezes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("membershipID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	freezes, err := h.service.ListFreezes(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("Failed to list freezes for membership %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list freezes"})
		return
	}

	c.JSON(http.StatusOK, freezes)
}
