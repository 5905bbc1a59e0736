package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/logger"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// parseRange reads optional start_date/end_date query params, defaulting to
// the last month ending today.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	end := time.Now()
	start := end.AddDate(0, -1, 0)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid start_date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid end_date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}

	return start, end, true
}

// @Summary      Club dashboard
// @Description  Today's classes, trainers working today, and memberships expiring within three days
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} report.Dashboard
// @Router       /dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	result, err := h.repo.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		logger.Errorf("Failed to build dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Financial report
// @Description  Payment totals with breakdowns by method and membership type
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD)"
// @Success      200 {object} report.FinancialReport
// @Failure      400 {object} api.ErrorResponse
// @Router       /reports/financial [get]
func (h *Handler) Financial(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	result, err := h.repo.Financial(c.Request.Context(), start, end)
	if err != nil {
		logger.Errorf("Failed to build financial report: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Attendance report
// @Description  Attendance counts and the most visited classes
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD)"
// @Success      200 {object} report.AttendanceReport
// @Failure      400 {object} api.ErrorResponse
// @Router       /reports/attendance [get]
func (h *Handler) Attendance(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	result, err := h.repo.Attendance(c.Request.Context(), start, end)
	if err != nil {
		logger.Errorf("Failed to build attendance report: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Trainer load report
// @Description  Class count and taught hours per trainer, busiest first
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD)"
// @Success      200 {object} report.TrainerLoadReport
// @Failure      400 {object} api.ErrorResponse
// @Router       /reports/trainer-load [get]
func (h *Handler) TrainerLoad(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	result, err := h.repo.TrainerLoad(c.Request.Context(), start, end)
	if err != nil {
		logger.Errorf("Failed to build trainer load report: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Club load report
// @Description  Busiest days and hours by attended registrations
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD)"
// @Success      200 {object} report.ClubLoadReport
// @Failure      400 {object} api.ErrorResponse
// @Router       /reports/club-load [get]
func (h *Handler) ClubLoad(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	result, err := h.repo.ClubLoad(c.Request.Context(), start, end)
	if err != nil {
		logger.Errorf("Failed to build club load report: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, result)
}
