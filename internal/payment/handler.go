package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      Record a manual payment
// @Description  For income not tied to a membership sale (admin or manager)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.RecordPaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments [post]
func (h *Handler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), req.ClientID, req.MembershipID, req.AmountCents, Method(req.Method), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		case errors.Is(err, ErrMembershipNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership not found"})
		default:
			logger.Errorf("Failed to record payment for client %d: %v", req.ClientID, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record payment"})
		}
		return
	}

	metrics.RecordPayment(req.Method)
	logger.Infof("Payment recorded: client=%d amount_cents=%d method=%s", p.ClientID, p.AmountCents, p.Method)

	c.JSON(http.StatusCreated, p)
}

// @Summary      List payments
// @Description  By client when client_id is given, otherwise by date range (default: last month)
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        client_id query int false "Client ID"
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date query string false "Range end (YYYY-MM-DD)"
// @Success      200 {array} payment.PaymentWithClient
// @Failure      400 {object} api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) List(c *gin.Context) {
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client ID"})
			return
		}

		payments, err := h.repo.ListByClient(c.Request.Context(), clientID)
		if err != nil {
			logger.Errorf("Failed to list payments for client %d: %v", clientID, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list payments"})
			return
		}

		c.JSON(http.StatusOK, payments)
		return
	}

	from, to, err := parseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Dates must be in YYYY-MM-DD format"})
		return
	}

	payments, err := h.repo.ListByRange(c.Request.Context(), from, to)
	if err != nil {
		logger.Errorf("Failed to list payments: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// parseRange applies the default reporting window of one month back.
func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now

	if startRaw != "" {
		parsed, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if endRaw != "" {
		parsed, err := time.Parse("2006-01-02", endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
