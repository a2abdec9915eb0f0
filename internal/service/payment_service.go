package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/payment/square"
	"github.com/storefront-next/internal/repository"
)

// PaymentGateway 支付网关抽象，便于测试替换真实 HTTP 客户端
type PaymentGateway interface {
	CreatePayment(ctx context.Context, input square.CreatePaymentInput) (*square.PaymentResult, error)
}

// SquareGateway 基于 Square HTTP API 的网关实现
type SquareGateway struct {
	cfg *square.Config
}

// NewSquareGateway 创建 Square 网关
func NewSquareGateway(cfg config.SquareConfig) *SquareGateway {
	return &SquareGateway{
		cfg: square.NewConfig(cfg.AccessToken, cfg.APIBaseURL, cfg.TimeoutMS),
	}
}

// CreatePayment 调用 Square 创建支付
func (g *SquareGateway) CreatePayment(ctx context.Context, input square.CreatePaymentInput) (*square.PaymentResult, error) {
	return square.CreatePayment(ctx, g.cfg, input)
}

// ProcessPaymentInput 处理支付输入
type ProcessPaymentInput struct {
	BusinessID     uint
	OrderID        uint
	TotalCents     int64
	SourceID       string
	BuyerEmail     string
	IdempotencyKey string
}

// ProcessPaymentResult 处理支付结果
type ProcessPaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// PaymentService 支付服务
type PaymentService struct {
	orderRepo    repository.OrderRepository
	businessRepo repository.BusinessRepository
	gateway      PaymentGateway
	notifier     *NotificationService
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	orderRepo repository.OrderRepository,
	businessRepo repository.BusinessRepository,
	gateway PaymentGateway,
	notifier *NotificationService,
) *PaymentService {
	return &PaymentService{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		gateway:      gateway,
		notifier:     notifier,
	}
}

// Process 处理支付。网关返回终态 COMPLETED 时订单置为 paid 并记录支付时间，
// 其余状态置为 pending；只要拿到网关支付 ID 就持久化，无论结果如何。
func (s *PaymentService) Process(ctx context.Context, input ProcessPaymentInput) (*ProcessPaymentResult, error) {
	if input.BusinessID == 0 {
		return nil, ErrBusinessIDRequired
	}
	if strings.TrimSpace(input.SourceID) == "" {
		return nil, ErrSourceIDRequired
	}
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		return nil, ErrIdempotencyKeyRequired
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.BusinessID != input.BusinessID {
		return nil, ErrOrderNotFound
	}

	// 已支付订单重复提交直接返回既有结果
	if order.Status == constants.OrderStatusPaid {
		return &ProcessPaymentResult{
			Success:   true,
			PaymentID: order.PaymentID,
			Status:    order.Status,
		}, nil
	}

	business, err := s.businessRepo.GetByID(input.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil || !business.IsActive {
		return nil, ErrBusinessNotFound
	}
	if strings.TrimSpace(business.SquareLocationID) == "" {
		return nil, ErrSquareLocationMissing
	}

	amount := input.TotalCents
	if amount <= 0 {
		amount = order.TotalCents
	}
	if amount <= 0 {
		return nil, ErrTotalInvalid
	}

	result, err := s.gateway.CreatePayment(ctx, square.CreatePaymentInput{
		IdempotencyKey: strings.TrimSpace(input.IdempotencyKey),
		SourceID:       strings.TrimSpace(input.SourceID),
		LocationID:     business.SquareLocationID,
		AmountCents:    amount,
		Currency:       business.Currency,
		ReferenceID:    order.OrderNo,
		BuyerEmail:     strings.TrimSpace(input.BuyerEmail),
		Note:           fmt.Sprintf("Order %s", order.OrderNo),
	})
	if err != nil {
		logger.Errorw("payment_gateway_request_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}

	paid := square.IsTerminalSuccess(result.Status)
	status := constants.OrderStatusPending
	updates := map[string]interface{}{
		"payment_id": result.PaymentID,
	}
	if paid {
		status = constants.OrderStatusPaid
		now := time.Now()
		updates["paid_at"] = &now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status, updates); err != nil {
		return nil, err
	}

	logger.Infow("payment_processed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"payment_id", result.PaymentID,
		"gateway_status", result.Status,
		"order_status", status,
		"amount", square.DisplayAmount(result.AmountCents),
		"currency", result.Currency,
	)

	if paid && s.notifier != nil {
		s.notifier.NotifyOrderPaid(order.ID, business.ID, order.CustomerEmail, order.CustomerName)
	}

	return &ProcessPaymentResult{
		Success:   paid,
		PaymentID: result.PaymentID,
		Status:    status,
	}, nil
}
