package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/google/uuid"
)

// OrderItemInput 订单项输入
type OrderItemInput struct {
	ProductID      string
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	BusinessID     uint
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Items          []OrderItemInput
	SubtotalCents  int64
	TaxCents       int64
	ShippingCents  int64
	TotalCents     int64
	IdempotencyKey string
}

// CreateOrderResult 创建订单结果
type CreateOrderResult struct {
	OrderID uint   `json:"orderId"`
	OrderNo string `json:"orderNo"`
	Status  string `json:"status"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	businessRepo repository.BusinessRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, businessRepo repository.BusinessRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
	}
}

// Create 创建草稿订单。校验全部通过后订单与订单项在同一事务内落库，
// 不存在只写了订单头没有订单项的中间状态。
func (s *OrderService) Create(input CreateOrderInput) (*CreateOrderResult, error) {
	if input.BusinessID == 0 {
		return nil, ErrBusinessIDRequired
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, ErrCustomerEmailRequired
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderItemsRequired
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
		if item.UnitPriceCents < 0 {
			return nil, ErrUnitPriceInvalid
		}
		if strings.TrimSpace(item.ProductID) == "" || strings.TrimSpace(item.ProductName) == "" {
			return nil, ErrProductInvalid
		}
	}

	business, err := s.businessRepo.GetByID(input.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil || !business.IsActive {
		return nil, ErrBusinessNotFound
	}

	// 相同幂等键重复提交直接返回已有订单
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		existing, err := s.orderRepo.GetByIdempotencyKey(key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &CreateOrderResult{
				OrderID: existing.ID,
				OrderNo: existing.OrderNo,
				Status:  existing.Status,
			}, nil
		}
	}

	items := make([]models.ShopOrderItem, 0, len(input.Items))
	var subtotal int64
	for _, in := range input.Items {
		lineTotal := models.LineTotalCents(in.UnitPriceCents, in.Quantity)
		subtotal += lineTotal
		items = append(items, models.ShopOrderItem{
			ProductID:      strings.TrimSpace(in.ProductID),
			ProductName:    strings.TrimSpace(in.ProductName),
			UnitPriceCents: in.UnitPriceCents,
			Quantity:       in.Quantity,
			LineTotalCents: lineTotal,
		})
	}
	if input.SubtotalCents <= 0 {
		input.SubtotalCents = subtotal
	}
	total := input.TotalCents
	if total <= 0 {
		total = input.SubtotalCents + input.TaxCents + input.ShippingCents
	}

	order := &models.ShopOrder{
		BusinessID:     input.BusinessID,
		OrderNo:        generateOrderNo(),
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		Status:         constants.OrderStatusDraft,
		SubtotalCents:  input.SubtotalCents,
		TaxCents:       input.TaxCents,
		ShippingCents:  input.ShippingCents,
		TotalCents:     total,
		IdempotencyKey: strings.TrimSpace(input.IdempotencyKey),
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		Status:  order.Status,
	}, nil
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.ShopOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SF%s%s", time.Now().Format("20060102150405"), suffix)
}
