package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/notify/mailerlite"
	"github.com/storefront-next/internal/notify/resend"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
)

const notifyDedupeTTL = 24 * time.Hour

// notifyDedupeBlocked 只有去重标记确认已存在时才拦截派发；
// 检查本身出错不算已派发。
func notifyDedupeBlocked(ok bool, err error) bool {
	return err == nil && !ok
}

// NotificationService 通知服务。所有入口都是尽力而为：
// 失败只记日志，绝不向调用方传播。
type NotificationService struct {
	queueClient   *queue.Client
	orderRepo     repository.OrderRepository
	businessRepo  repository.BusinessRepository
	resendCfg     config.ResendConfig
	mailerliteCfg config.MailerLiteConfig
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	queueClient *queue.Client,
	orderRepo repository.OrderRepository,
	businessRepo repository.BusinessRepository,
	resendCfg config.ResendConfig,
	mailerliteCfg config.MailerLiteConfig,
) *NotificationService {
	return &NotificationService{
		queueClient:   queueClient,
		orderRepo:     orderRepo,
		businessRepo:  businessRepo,
		resendCfg:     resendCfg,
		mailerliteCfg: mailerliteCfg,
	}
}

// NotifyOrderPaid 订单支付成功后触发确认邮件与营销名单同步。
// Redis 去重键保证同一订单只尝试一次；队列不可用时降级为后台协程直发。
func (s *NotificationService) NotifyOrderPaid(orderID, businessID uint, email, name string) {
	if s == nil {
		return
	}
	dedupeKey := fmt.Sprintf("notify:order_paid:%d", orderID)
	ok, err := cache.SetNX(context.Background(), dedupeKey, "1", notifyDedupeTTL)
	if notifyDedupeBlocked(ok, err) {
		logger.Infow("notification_already_attempted", "order_id", orderID)
		return
	}
	if err != nil {
		// 去重检查失败时照常派发：宁可重发也不静默丢单
		logger.Warnw("notification_dedupe_check_failed", "order_id", orderID, "error", err)
	}

	emailPayload := queue.OrderConfirmationEmailPayload{
		OrderID: orderID,
		Event:   constants.NotificationEventOrderPaid,
	}
	leadPayload := queue.MailingListLeadSyncPayload{
		BusinessID: businessID,
		Email:      strings.TrimSpace(email),
		Name:       strings.TrimSpace(name),
		Event:      constants.NotificationEventOrderPaid,
	}

	if s.queueClient.Enabled() {
		handedOff := true
		if err := s.queueClient.EnqueueOrderConfirmationEmail(emailPayload); err != nil {
			handedOff = false
			logger.Errorw("notification_email_enqueue_failed", "order_id", orderID, "error", err)
		}
		if err := s.queueClient.EnqueueMailingListLeadSync(leadPayload); err != nil {
			handedOff = false
			logger.Errorw("notification_lead_enqueue_failed", "order_id", orderID, "error", err)
		}
		if !handedOff {
			// 交接失败时释放去重标记，下一次触发仍可重试
			_ = cache.Del(context.Background(), dedupeKey)
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		delivered := true
		if err := s.DispatchOrderConfirmationEmail(ctx, emailPayload); err != nil {
			delivered = false
			logger.Errorw("notification_email_dispatch_failed", "order_id", orderID, "error", err)
		}
		if err := s.DispatchMailingListLeadSync(ctx, leadPayload); err != nil {
			delivered = false
			logger.Errorw("notification_lead_dispatch_failed", "order_id", orderID, "error", err)
		}
		if !delivered {
			_ = cache.Del(ctx, dedupeKey)
		}
	}()
}

// NotifyBookingLead 预约提交后同步营销名单，尽力而为
func (s *NotificationService) NotifyBookingLead(businessID uint, email, name string) {
	if s == nil || strings.TrimSpace(email) == "" {
		return
	}
	payload := queue.MailingListLeadSyncPayload{
		BusinessID: businessID,
		Email:      strings.TrimSpace(email),
		Name:       strings.TrimSpace(name),
		Event:      constants.NotificationEventCartBooking,
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueMailingListLeadSync(payload); err != nil {
			logger.Errorw("notification_lead_enqueue_failed", "business_id", businessID, "error", err)
		}
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.DispatchMailingListLeadSync(ctx, payload); err != nil {
			logger.Errorw("notification_lead_dispatch_failed", "business_id", businessID, "error", err)
		}
	}()
}

// DispatchOrderConfirmationEmail 发送订单确认邮件（worker 侧执行）。
// 邮件渠道未配置视为无事发生，记日志后返回 nil。
func (s *NotificationService) DispatchOrderConfirmationEmail(ctx context.Context, payload queue.OrderConfirmationEmailPayload) error {
	if !s.resendCfg.Enabled || strings.TrimSpace(s.resendCfg.APIKey) == "" {
		logger.Infow("notification_email_channel_disabled", "order_id", payload.OrderID)
		return nil
	}
	order, err := s.orderRepo.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("notification_email_order_missing", "order_id", payload.OrderID)
		return nil
	}
	to := strings.TrimSpace(order.CustomerEmail)
	if to == "" {
		logger.Warnw("notification_email_receiver_missing", "order_id", payload.OrderID)
		return nil
	}

	businessName := ""
	if business, err := s.businessRepo.GetByID(order.BusinessID); err == nil && business != nil {
		businessName = business.Name
	}

	subject := fmt.Sprintf("Order %s confirmed", order.OrderNo)
	if businessName != "" {
		subject = fmt.Sprintf("%s - order %s confirmed", businessName, order.OrderNo)
	}
	result, err := resend.Send(ctx, &resend.Config{
		APIKey:     s.resendCfg.APIKey,
		APIBaseURL: s.resendCfg.APIBaseURL,
		From:       s.resendCfg.From,
		FromName:   s.resendCfg.FromName,
		TimeoutMS:  s.resendCfg.TimeoutMS,
	}, resend.SendInput{
		To:      []string{to},
		Subject: subject,
		Text:    buildOrderEmailText(order, businessName),
	})
	if err != nil {
		return err
	}
	logger.Infow("notification_email_sent",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"message_id", result.MessageID,
	)
	return nil
}

// DispatchMailingListLeadSync 同步营销名单（worker 侧执行）。
// 名单渠道未配置视为无事发生，记日志后返回 nil。
func (s *NotificationService) DispatchMailingListLeadSync(ctx context.Context, payload queue.MailingListLeadSyncPayload) error {
	if !s.mailerliteCfg.Enabled || strings.TrimSpace(s.mailerliteCfg.APIKey) == "" {
		logger.Infow("notification_lead_channel_disabled", "email", payload.Email)
		return nil
	}
	if strings.TrimSpace(payload.Email) == "" {
		logger.Warnw("notification_lead_email_missing", "business_id", payload.BusinessID)
		return nil
	}

	groupID := s.mailerliteCfg.GroupID
	if business, err := s.businessRepo.GetByID(payload.BusinessID); err == nil && business != nil {
		if strings.TrimSpace(business.MailingGroupID) != "" {
			groupID = business.MailingGroupID
		}
	}

	result, err := mailerlite.UpsertSubscriber(ctx, &mailerlite.Config{
		APIKey:     s.mailerliteCfg.APIKey,
		APIBaseURL: s.mailerliteCfg.APIBaseURL,
		GroupID:    s.mailerliteCfg.GroupID,
		TimeoutMS:  s.mailerliteCfg.TimeoutMS,
	}, mailerlite.UpsertSubscriberInput{
		Email:   payload.Email,
		Name:    payload.Name,
		GroupID: groupID,
		Fields: map[string]interface{}{
			"last_event": payload.Event,
		},
	})
	if err != nil {
		return err
	}
	logger.Infow("notification_lead_synced",
		"email", payload.Email,
		"subscriber_id", result.SubscriberID,
	)
	return nil
}

func buildOrderEmailText(order *models.ShopOrder, businessName string) string {
	var b strings.Builder
	if businessName != "" {
		fmt.Fprintf(&b, "Thank you for your order at %s.\n\n", businessName)
	} else {
		b.WriteString("Thank you for your order.\n\n")
	}
	fmt.Fprintf(&b, "Order number: %s\n", order.OrderNo)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d  %s\n", item.ProductName, item.Quantity, models.CentsToDisplay(item.LineTotalCents))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", models.CentsToDisplay(order.TotalCents))
	return b.String()
}
