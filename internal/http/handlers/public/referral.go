package public

import (
	"net/http"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type referralRequest struct {
	BusinessID uint   `json:"businessId" binding:"required"`
	Email      string `json:"email" binding:"required"`
}

// ReferralBalance 查询返利余额
func (h *Handler) ReferralBalance(c *gin.Context) {
	var req referralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.ReferralService.GetBalance(req.BusinessID, req.Email)
	if err != nil {
		respondWithMappedError(c, err, referralErrorRules)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// ReferralCode 查询推荐码
func (h *Handler) ReferralCode(c *gin.Context) {
	var req referralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.ReferralService.GetCode(req.BusinessID, req.Email)
	if err != nil {
		respondWithMappedError(c, err, referralErrorRules)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}
