package class

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// @Summary      Create a fitness class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.CreateClassRequest true "Class payload"
// @Success      201 {object} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStartInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class cannot start in the past"})
		case errors.Is(err, ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class end time must be after start time"})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		default:
			logger.Errorf("Failed to create class: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		}
		return
	}

	c.JSON(http.StatusCreated, fc)
}

// @Summary      Get class details
// @Description  Includes trainer name and current registration count
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} class.ClassDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /classes/{classID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	details, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
			return
		}
		logger.Errorf("Failed to load class %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load class"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// @Summary      Update a fitness class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.UpdateClassRequest true "Class payload"
// @Success      200 {object} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class end time must be after start time"})
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		default:
			logger.Errorf("Failed to update class %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update class"})
		}
		return
	}

	c.JSON(http.StatusOK, fc)
}

// @Summary      Reschedule a fitness class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.RescheduleRequest true "New time window"
// @Success      200 {object} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/reschedule [post]
func (h *Handler) Reschedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStartInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class cannot start in the past"})
		case errors.Is(err, ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class end time must be after start time"})
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		default:
			logger.Errorf("Failed to reschedule class %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reschedule class"})
		}
		return
	}

	c.JSON(http.StatusOK, fc)
}

// @Summary      Delete a fitness class
// @Description  Registrations for the class are removed with it
// @Tags         admin,classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
			return
		}
		logger.Errorf("Failed to delete class %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete class"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class deleted"})
}

// @Summary      Register a client for a class
// @Description  Requires an active membership and a free slot
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.RegisterRequest true "Client to register"
// @Success      201 {object} class.Registration
// @Failure      402 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/registrations [post]
func (h *Handler) Register(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.service.Register(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrNoActiveMembership):
			c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Error: "Client has no active membership"})
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class is at capacity"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Client is already registered for this class"})
		default:
			logger.Errorf("Failed to register client %d for class %d: %v", req.ClientID, id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register for class"})
		}
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// @Summary      Remove a client from a class
// @Tags         admin,classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        clientID path int true "Client ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/registrations/{clientID} [delete]
func (h *Handler) Unregister(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	clientID, err := strconv.Atoi(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
		return
	}

	if err := h.service.Unregister(c.Request.Context(), classID, clientID); err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Registration not found"})
			return
		}
		logger.Errorf("Failed to unregister client %d from class %d: %v", clientID, classID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to remove registration"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Registration removed"})
}

// @Summary      Mark attendance for a registration
// @Description  Marking attended deducts a visit from a visit-based membership
// @Tags         classes,attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        registrationID path int true "Registration ID"
// @Param        request body class.AttendanceRequest true "Attendance flag"
// @Success      200 {object} class.Registration
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /registrations/{registrationID}/attendance [put]
func (h *Handler) SetAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("registrationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid registration ID"})
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.service.SetAttendance(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Registration not found"})
		case errors.Is(err, ErrNoVisitsLeft):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "No remaining visits on the membership"})
		default:
			logger.Errorf("Failed to mark attendance for registration %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to mark attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, reg)
}

// @Summary      Class calendar
// @Description  Classes starting within the requested window, defaulting to the next 7 days
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Window start (YYYY-MM-DD)"
// @Param        to query string false "Window end (YYYY-MM-DD)"
// @Success      200 {array} class.CalendarEvent
// @Failure      400 {object} api.ErrorResponse
// @Router       /schedule/events [get]
func (h *Handler) Calendar(c *gin.Context) {
	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		// The whole closing day counts.
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	events, err := h.service.Calendar(c.Request.Context(), from, to)
	if err != nil {
		logger.Errorf("Failed to load calendar: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load calendar"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// @Summary      List registrations for a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {array} class.RegistrationWithClient
// @Router       /classes/{classID}/registrations [get]
func (h *Handler) ListRegistrations(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	registrations, err := h.service.ListRegistrations(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("Failed to list registrations for class %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, registrations)
}
