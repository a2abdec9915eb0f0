package queue

import (
	"encoding/json"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 订单确认邮件通知任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskMailingListLeadSync 营销名单同步任务
	TaskMailingListLeadSync = constants.TaskMailingListLeadSync
)

// OrderConfirmationEmailPayload 订单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Event   string `json:"event"`
}

// MailingListLeadSyncPayload 营销名单同步任务载荷
type MailingListLeadSyncPayload struct {
	BusinessID uint   `json:"business_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Event      string `json:"event"`
}

// NewOrderConfirmationEmailTask 创建订单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewMailingListLeadSyncTask 创建营销名单同步任务
func NewMailingListLeadSyncTask(payload MailingListLeadSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMailingListLeadSync, body), nil
}
