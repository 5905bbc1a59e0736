package trainer

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

// @Summary      Create a trainer
// @Tags         admin,trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body trainer.TrainerRequest true "Trainer payload"
// @Success      201 {object} trainer.Trainer
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) Create(c *gin.Context) {
	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Trainer with this email already exists"})
			return
		}
		logger.Errorf("Failed to create trainer: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create trainer"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      List trainers
// @Tags         admin,trainers
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Only active trainers"
// @Success      200 {array} trainer.Trainer
// @Router       /admin/trainers [get]
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	trainers, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Errorf("Failed to list trainers: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// @Summary      Get a trainer
// @Tags         admin,trainers
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {object} trainer.Trainer
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load trainer"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// @Summary      Update a trainer
// @Tags         admin,trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        request body trainer.TrainerRequest true "Trainer payload"
// @Success      200 {object} trainer.Trainer
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Trainer with this email already exists"})
		default:
			logger.Errorf("Failed to update trainer %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update trainer"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a trainer
// @Description  Refused while any class is assigned to the trainer
// @Tags         admin,trainers
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrHasAssignedClasses):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Cannot delete a trainer with assigned classes"})
		default:
			logger.Errorf("Failed to delete trainer %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete trainer"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Trainer deleted"})
}

// @Summary      Add a weekly schedule entry
// @Tags         admin,trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        request body trainer.ScheduleEntryRequest true "Schedule entry"
// @Success      201 {object} trainer.ScheduleEntry
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID}/schedule [post]
func (h *Handler) AddScheduleEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.service.AddScheduleEntry(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrInvalidTimeWindow):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Times must be HH:MM and end must be after start"})
		default:
			logger.Errorf("Failed to add schedule entry for trainer %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to add schedule entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// @Summary      Get a trainer's weekly schedule
// @Tags         admin,trainers
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {array} trainer.ScheduleEntry
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID}/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	entries, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// @Summary      Remove a schedule entry
// @Tags         admin,trainers
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        entryID path int true "Schedule entry ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/trainers/{trainerID}/schedule/{entryID} [delete]
func (h *Handler) RemoveScheduleEntry(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	entryID, err := strconv.Atoi(c.Param("entryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid entry ID"})
		return
	}

	if err := h.service.RemoveScheduleEntry(c.Request.Context(), trainerID, entryID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to remove schedule entry"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Schedule entry removed"})
}
