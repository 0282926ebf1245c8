package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"payment/internal/domain"
	"payment/internal/middleware"
	"payment/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest is the HTTP request body for creating a payment.
type CreatePaymentRequest struct {
	OrderID  *int64   `json:"order_id" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Currency *string  `json:"currency"`
}

// PaymentResponse is the HTTP response for payment operations.
type PaymentResponse struct {
	ID        string  `json:"id"`
	OrderID   int64   `json:"order_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt.Format(time.RFC3339Nano),
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing Authorization header"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var currency string
	if req.Currency != nil {
		currency = *req.Currency
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), service.CreatePaymentRequest{
		UserID:   userID,
		OrderID:  *req.OrderID,
		Amount:   *req.Amount,
		Currency: currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing Authorization header"})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		response = append(response, toPaymentResponse(payment))
	}

	respondJSON(c, http.StatusOK, response)
}
