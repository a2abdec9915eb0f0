package constants

// 购物车状态
const (
	CartStatusActive    = "active"
	CartStatusAbandoned = "abandoned"
)

// 订单状态（只允许向前流转：draft → pending / paid）
const (
	OrderStatusDraft   = "draft"
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// 支付网关终态
const (
	GatewayStatusCompleted = "COMPLETED"
	GatewayStatusApproved  = "APPROVED"
	GatewayStatusPending   = "PENDING"
	GatewayStatusFailed    = "FAILED"
	GatewayStatusCanceled  = "CANCELED"
)

// 队列与任务名称
const (
	QueueDefault = "default"

	TaskOrderConfirmationEmail = "notify:order_confirmation_email"
	TaskMailingListLeadSync    = "notify:mailing_list_lead_sync"
)

// 通知事件类型
const (
	NotificationEventOrderPaid   = "order_paid"
	NotificationEventCartBooking = "cart_booking"
)

// DefaultCartExpireHours 购物车默认有效期（小时）
const DefaultCartExpireHours = 24
