package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

type processPaymentRequest struct {
	BusinessID     uint   `json:"businessId" binding:"required"`
	OrderID        uint   `json:"orderId" binding:"required"`
	TotalCents     int64  `json:"totalCents"`
	SourceID       string `json:"sourceId" binding:"required"`
	BuyerEmail     string `json:"buyerEmail"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required"`
}

// ProcessPayment 处理订单支付
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.PaymentService.Process(c.Request.Context(), service.ProcessPaymentInput{
		BusinessID:     req.BusinessID,
		OrderID:        req.OrderID,
		TotalCents:     req.TotalCents,
		SourceID:       req.SourceID,
		BuyerEmail:     req.BuyerEmail,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules)
		return
	}
	response.Success(c, result)
}
