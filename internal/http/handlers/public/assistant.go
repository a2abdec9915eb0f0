package public

import (
	"context"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

const assistantConfigCacheKey = "assistant:config"
const assistantConfigCacheTTL = 10 * time.Minute

// AssistantConfig 返回店铺助手配置
func (h *Handler) AssistantConfig(c *gin.Context) {
	ctx := context.Background()
	var cached service.AssistantConfig
	if hit, err := cache.GetJSON(ctx, assistantConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, &cached)
		return
	}
	cfg := h.AssistantService.GetConfig()
	_ = cache.SetJSON(ctx, assistantConfigCacheKey, cfg, assistantConfigCacheTTL)
	response.Success(c, cfg)
}
