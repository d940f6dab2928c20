package handler

import (
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/usecase/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase *payment.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{paymentUseCase: paymentUseCase}
}

// GetPayment handles GET /payments/:id
// @Summary Get payment card data
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.paymentUseCase.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// SavePayment handles PUT /payments/:id
// @Summary Create or overwrite payment card data
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body domain.Payment true "Payment"
// @Success 200 {object} domain.Payment
// @Failure 400 {object} ErrorResponse
// @Router /payments/{id} [put]
func (h *PaymentHandler) SavePayment(c *gin.Context) {
	var req domain.Payment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if err := h.paymentUseCase.SavePayment(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, &req)
}
