package public

import (
	"errors"
	"net/http"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到 HTTP 状态码的映射关系。
type mappedHandlerError struct {
	target error
	status int
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.status, rule.target.Error())
			return
		}
	}
	logger.Errorw("handler_unmapped_error",
		"path", c.FullPath(),
		"error", err,
	)
	response.Internal(c, "internal server error")
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrBusinessIDRequired, status: http.StatusBadRequest},
	{target: service.ErrSessionTokenRequired, status: http.StatusBadRequest},
	{target: service.ErrProductInvalid, status: http.StatusBadRequest},
	{target: service.ErrUnitPriceInvalid, status: http.StatusBadRequest},
	{target: service.ErrQuantityInvalid, status: http.StatusBadRequest},
	{target: service.ErrServiceNameRequired, status: http.StatusBadRequest},
	{target: service.ErrBusinessNotFound, status: http.StatusNotFound},
	{target: service.ErrCartNotFound, status: http.StatusNotFound},
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrBusinessIDRequired, status: http.StatusBadRequest},
	{target: service.ErrCustomerEmailRequired, status: http.StatusBadRequest},
	{target: service.ErrOrderItemsRequired, status: http.StatusBadRequest},
	{target: service.ErrQuantityInvalid, status: http.StatusBadRequest},
	{target: service.ErrUnitPriceInvalid, status: http.StatusBadRequest},
	{target: service.ErrProductInvalid, status: http.StatusBadRequest},
	{target: service.ErrBusinessNotFound, status: http.StatusNotFound},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrBusinessIDRequired, status: http.StatusBadRequest},
	{target: service.ErrSourceIDRequired, status: http.StatusBadRequest},
	{target: service.ErrIdempotencyKeyRequired, status: http.StatusBadRequest},
	{target: service.ErrTotalInvalid, status: http.StatusBadRequest},
	{target: service.ErrOrderNotFound, status: http.StatusNotFound},
	{target: service.ErrBusinessNotFound, status: http.StatusNotFound},
	{target: service.ErrSquareLocationMissing, status: http.StatusInternalServerError},
	{target: service.ErrPaymentChannelConfigInvalid, status: http.StatusInternalServerError},
	{target: service.ErrPaymentGatewayFailed, status: http.StatusInternalServerError},
}

var referralErrorRules = []mappedHandlerError{
	{target: service.ErrBusinessIDRequired, status: http.StatusBadRequest},
	{target: service.ErrEmailRequired, status: http.StatusBadRequest},
}
