package service

import "errors"

// 校验类错误（映射 400）
var (
	ErrBusinessIDRequired     = errors.New("businessId is required")
	ErrSessionTokenRequired   = errors.New("sessionToken is required")
	ErrProductInvalid         = errors.New("productId and productName are required")
	ErrUnitPriceInvalid       = errors.New("unitPriceCents must be non-negative")
	ErrQuantityInvalid        = errors.New("quantity must be a positive integer")
	ErrServiceNameRequired    = errors.New("serviceName is required")
	ErrOrderItemsRequired     = errors.New("order must contain at least one item")
	ErrCustomerEmailRequired  = errors.New("customerEmail is required")
	ErrIdempotencyKeyRequired = errors.New("idempotencyKey is required")
	ErrTotalInvalid           = errors.New("totalCents must be positive")
	ErrSourceIDRequired       = errors.New("sourceId is required")
	ErrEmailRequired          = errors.New("email is required")
)

// 资源不存在类错误（映射 404）
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// 配置 / 上游类错误（映射 500）
var (
	ErrSquareLocationMissing       = errors.New("business has no payment location configured")
	ErrPaymentChannelConfigInvalid = errors.New("payment channel configuration is invalid")
	ErrPaymentGatewayFailed        = errors.New("payment gateway request failed")
)
