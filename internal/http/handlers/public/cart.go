package public

import (
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

type getOrCreateCartRequest struct {
	BusinessID   uint   `json:"businessId" binding:"required"`
	SessionToken string `json:"sessionToken"`
}

type addCartItemRequest struct {
	SessionToken   string `json:"sessionToken" binding:"required"`
	ProductID      string `json:"productId" binding:"required"`
	ProductName    string `json:"productName" binding:"required"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type updateCartItemRequest struct {
	SessionToken string `json:"sessionToken" binding:"required"`
	ItemID       uint   `json:"itemId" binding:"required"`
	Quantity     int    `json:"quantity"`
}

type removeCartItemRequest struct {
	SessionToken string `json:"sessionToken" binding:"required"`
	ItemID       uint   `json:"itemId" binding:"required"`
}

type setBookingRequest struct {
	SessionToken  string     `json:"sessionToken" binding:"required"`
	ServiceName   string     `json:"serviceName" binding:"required"`
	StaffName     string     `json:"staffName"`
	StartsAt      *time.Time `json:"startsAt"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Notes         string     `json:"notes"`
}

type clearCartRequest struct {
	SessionToken string `json:"sessionToken" binding:"required"`
}

// GetOrCreateCart 获取或创建购物车
func (h *Handler) GetOrCreateCart(c *gin.Context) {
	var req getOrCreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	view, err := h.CartService.GetOrCreate(service.GetOrCreateCartInput{
		BusinessID:   req.BusinessID,
		SessionToken: req.SessionToken,
	})
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	response.Success(c, view)
}

// AddCartItem 添加购物车项
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	itemID, err := h.CartService.AddItem(service.AddCartItemInput{
		SessionToken:   req.SessionToken,
		ProductID:      req.ProductID,
		ProductName:    req.ProductName,
		UnitPriceCents: req.UnitPriceCents,
		Quantity:       req.Quantity,
	})
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	response.OKWith(c, gin.H{"itemId": itemID})
}

// UpdateCartItem 更新购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.CartService.UpdateItem(service.UpdateCartItemInput{
		SessionToken: req.SessionToken,
		ItemID:       req.ItemID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	response.OK(c)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req removeCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.CartService.RemoveItem(service.RemoveCartItemInput{
		SessionToken: req.SessionToken,
		ItemID:       req.ItemID,
	})
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	response.OK(c)
}

// SetBookingDetails 写入预约信息
func (h *Handler) SetBookingDetails(c *gin.Context) {
	var req setBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cart, err := h.CartService.SetBookingDetails(service.SetBookingInput{
		SessionToken:  req.SessionToken,
		ServiceName:   req.ServiceName,
		StaffName:     req.StaffName,
		StartsAt:      req.StartsAt,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	h.NotificationService.NotifyBookingLead(cart.BusinessID, req.CustomerEmail, req.CustomerName)
	response.OK(c)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	var req clearCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CartService.Clear(req.SessionToken); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules)
		return
	}
	response.OK(c)
}
