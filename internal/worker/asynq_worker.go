package worker

import (
	"context"
	"encoding/json"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskMailingListLeadSync, c.handleMailingListLeadSync)
}

func (c *Consumer) handleOrderConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.NotificationService.DispatchOrderConfirmationEmail(ctx, payload); err != nil {
		logger.Warnw("worker_order_email_send_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleMailingListLeadSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_lead_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MailingListLeadSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_lead_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" {
		logger.Debugw("worker_lead_sync_skip_empty_email", "business_id", payload.BusinessID)
		return nil
	}
	if err := c.NotificationService.DispatchMailingListLeadSync(ctx, payload); err != nil {
		logger.Warnw("worker_lead_sync_failed", "email", payload.Email, "error", err)
		return err
	}
	return nil
}
