package service

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/google/uuid"
)

// CartView 购物车响应视图
type CartView struct {
	Cart    *models.Cart               `json:"cart"`
	Items   []models.CartItem          `json:"items"`
	Booking *models.CartBookingDetails `json:"booking"`
}

// GetOrCreateCartInput 获取或创建购物车输入
type GetOrCreateCartInput struct {
	BusinessID   uint
	SessionToken string
}

// AddCartItemInput 添加购物车项输入
type AddCartItemInput struct {
	SessionToken   string
	ProductID      string
	ProductName    string
	UnitPriceCents int64
	Quantity       int
}

// UpdateCartItemInput 更新购物车项输入
type UpdateCartItemInput struct {
	SessionToken string
	ItemID       uint
	Quantity     int
}

// RemoveCartItemInput 移除购物车项输入
type RemoveCartItemInput struct {
	SessionToken string
	ItemID       uint
}

// SetBookingInput 预约信息输入
type SetBookingInput struct {
	SessionToken  string
	ServiceName   string
	StaffName     string
	StartsAt      *time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// CartService 购物车服务。获取或创建之外的操作仅凭会话令牌定位购物车，
// 令牌为服务端生成的 UUID，本身即是凭证。
type CartService struct {
	cartRepo     repository.CartRepository
	businessRepo repository.BusinessRepository
	expireHours  int
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, businessRepo repository.BusinessRepository, expireHours int) *CartService {
	if expireHours <= 0 {
		expireHours = constants.DefaultCartExpireHours
	}
	return &CartService{
		cartRepo:     cartRepo,
		businessRepo: businessRepo,
		expireHours:  expireHours,
	}
}

// GetOrCreate 按会话令牌获取活跃购物车，不存在则创建。
// 查找与创建之间存在并发窗口：两个请求同时携带同一新令牌时可能各建一车，
// 读取按 created_at 倒序取最新一条，旧车随过期时间自然淘汰。
func (s *CartService) GetOrCreate(input GetOrCreateCartInput) (*CartView, error) {
	if input.BusinessID == 0 {
		return nil, ErrBusinessIDRequired
	}
	business, err := s.businessRepo.GetByID(input.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil || !business.IsActive {
		return nil, ErrBusinessNotFound
	}

	token := strings.TrimSpace(input.SessionToken)
	now := time.Now()
	if token != "" {
		cart, err := s.cartRepo.GetActiveBySessionToken(token, now)
		if err != nil {
			return nil, err
		}
		if cart != nil && cart.BusinessID == input.BusinessID {
			return cartToView(cart), nil
		}
		if cart != nil {
			// 令牌撞了别家商户的车，换新令牌重新建车
			token = uuid.NewString()
		}
	} else {
		token = uuid.NewString()
	}

	expiresAt := now.Add(time.Duration(s.expireHours) * time.Hour)
	cart := &models.Cart{
		BusinessID:   input.BusinessID,
		SessionToken: token,
		Status:       constants.CartStatusActive,
		ExpiresAt:    &expiresAt,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cartToView(cart), nil
}

// AddItem 添加购物车项，行小计由服务端按单价×数量重算
func (s *CartService) AddItem(input AddCartItemInput) (uint, error) {
	if input.Quantity <= 0 {
		return 0, ErrQuantityInvalid
	}
	if input.UnitPriceCents < 0 {
		return 0, ErrUnitPriceInvalid
	}
	if strings.TrimSpace(input.ProductID) == "" || strings.TrimSpace(input.ProductName) == "" {
		return 0, ErrProductInvalid
	}
	cart, err := s.resolveCart(input.SessionToken)
	if err != nil {
		return 0, err
	}

	item := &models.CartItem{
		CartID:         cart.ID,
		ProductID:      strings.TrimSpace(input.ProductID),
		ProductName:    strings.TrimSpace(input.ProductName),
		UnitPriceCents: input.UnitPriceCents,
		Quantity:       input.Quantity,
		LineTotalCents: models.LineTotalCents(input.UnitPriceCents, input.Quantity),
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return 0, err
	}
	_ = s.cartRepo.TouchCart(cart.ID)
	return item.ID, nil
}

// UpdateItem 更新购物车项数量并重算行小计。
// 数量校验在任何写入之前完成，非法数量不产生任何变更。
func (s *CartService) UpdateItem(input UpdateCartItemInput) error {
	if input.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	cart, err := s.resolveCart(input.SessionToken)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetItem(cart.ID, input.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}

	updates := map[string]interface{}{
		"quantity":         input.Quantity,
		"line_total_cents": models.LineTotalCents(item.UnitPriceCents, input.Quantity),
	}
	if err := s.cartRepo.UpdateItem(item.ID, updates); err != nil {
		return err
	}
	_ = s.cartRepo.TouchCart(cart.ID)
	return nil
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(input RemoveCartItemInput) error {
	cart, err := s.resolveCart(input.SessionToken)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetItem(cart.ID, input.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return err
	}
	_ = s.cartRepo.TouchCart(cart.ID)
	return nil
}

// SetBookingDetails 写入或更新预约信息，返回所属购物车
func (s *CartService) SetBookingDetails(input SetBookingInput) (*models.Cart, error) {
	if strings.TrimSpace(input.ServiceName) == "" {
		return nil, ErrServiceNameRequired
	}
	cart, err := s.resolveCart(input.SessionToken)
	if err != nil {
		return nil, err
	}
	booking := &models.CartBookingDetails{
		CartID:        cart.ID,
		ServiceName:   strings.TrimSpace(input.ServiceName),
		StaffName:     strings.TrimSpace(input.StaffName),
		StartsAt:      input.StartsAt,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Notes:         input.Notes,
	}
	if err := s.cartRepo.UpsertBooking(booking); err != nil {
		return nil, err
	}
	_ = s.cartRepo.TouchCart(cart.ID)
	return cart, nil
}

// Clear 清空购物车并置为 abandoned。
// 购物车不存在时视为已清空，返回成功（幂等）。
func (s *CartService) Clear(sessionToken string) error {
	cart, err := s.resolveCartOptional(sessionToken)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.Clear(cart.ID)
}

func (s *CartService) resolveCart(sessionToken string) (*models.Cart, error) {
	cart, err := s.resolveCartOptional(sessionToken)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

func (s *CartService) resolveCartOptional(sessionToken string) (*models.Cart, error) {
	token := strings.TrimSpace(sessionToken)
	if token == "" {
		return nil, ErrSessionTokenRequired
	}
	return s.cartRepo.GetActiveBySessionToken(token, time.Now())
}

func cartToView(cart *models.Cart) *CartView {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartView{
		Cart:    cart,
		Items:   items,
		Booking: cart.Booking,
	}
}
