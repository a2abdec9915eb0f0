package provider

import (
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
)

// Container 依赖容器。进程启动时装配一次，此后只读。
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	BusinessRepo repository.BusinessRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	ReferralRepo repository.ReferralRepository

	CartService         *service.CartService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	NotificationService *service.NotificationService
	ReferralService     *service.ReferralService
	AssistantService    *service.AssistantService
}

// NewContainer 装配依赖容器
func NewContainer(cfg *config.Config) (*Container, error) {
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, err
	}

	businessRepo := repository.NewBusinessRepository(models.DB)
	cartRepo := repository.NewCartRepository(models.DB)
	orderRepo := repository.NewOrderRepository(models.DB)
	referralRepo := repository.NewReferralRepository(models.DB)

	notificationService := service.NewNotificationService(
		queueClient,
		orderRepo,
		businessRepo,
		cfg.Resend,
		cfg.MailerLite,
	)
	gateway := service.NewSquareGateway(cfg.Square)

	return &Container{
		Config:      cfg,
		QueueClient: queueClient,

		BusinessRepo: businessRepo,
		CartRepo:     cartRepo,
		OrderRepo:    orderRepo,
		ReferralRepo: referralRepo,

		CartService:         service.NewCartService(cartRepo, businessRepo, cfg.Cart.ExpireHours),
		OrderService:        service.NewOrderService(orderRepo, businessRepo),
		PaymentService:      service.NewPaymentService(orderRepo, businessRepo, gateway, notificationService),
		NotificationService: notificationService,
		ReferralService:     service.NewReferralService(referralRepo),
		AssistantService:    service.NewAssistantService(),
	}, nil
}

// Close 释放容器资源
func (c *Container) Close() error {
	if c == nil || c.QueueClient == nil {
		return nil
	}
	return c.QueueClient.Close()
}
