package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

type orderItemRequest struct {
	ProductID      string `json:"productId" binding:"required"`
	ProductName    string `json:"productName" binding:"required"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type createOrderRequest struct {
	BusinessID     uint               `json:"businessId" binding:"required"`
	CustomerName   string             `json:"customerName"`
	CustomerEmail  string             `json:"customerEmail" binding:"required"`
	CustomerPhone  string             `json:"customerPhone"`
	Items          []orderItemRequest `json:"items"`
	SubtotalCents  int64              `json:"subtotalCents"`
	TaxCents       int64              `json:"taxCents"`
	ShippingCents  int64              `json:"shippingCents"`
	TotalCents     int64              `json:"totalCents"`
	IdempotencyKey string             `json:"idempotencyKey"`
}

// CreateOrder 创建草稿订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	result, err := h.OrderService.Create(service.CreateOrderInput{
		BusinessID:     req.BusinessID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Items:          items,
		SubtotalCents:  req.SubtotalCents,
		TaxCents:       req.TaxCents,
		ShippingCents:  req.ShippingCents,
		TotalCents:     req.TotalCents,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules)
		return
	}
	response.Created(c, result)
}
