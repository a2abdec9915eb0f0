package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetActiveBySessionToken(token string, now time.Time) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(itemID uint, updates map[string]interface{}) error
	DeleteItem(itemID uint) error
	UpsertBooking(booking *models.CartBookingDetails) error
	Clear(cartID uint) error
	TouchCart(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetActiveBySessionToken 按会话令牌获取未过期的活跃购物车（含购物车项与预约信息）。
// 令牌由服务端生成，全局唯一，查询不再限定商户。
func (r *GormCartRepository) GetActiveBySessionToken(token string, now time.Time) (*models.Cart, error) {
	var cart models.Cart
	query := r.db.Preload("Items").Preload("Booking").
		Where("session_token = ? AND status = ?", token, constants.CartStatusActive).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at desc")
	if err := query.First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// GetItem 获取指定购物车下的购物车项
func (r *GormCartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 添加购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(itemID uint, updates map[string]interface{}) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(updates).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// UpsertBooking 写入或更新预约信息（每车一条）
func (r *GormCartRepository) UpsertBooking(booking *models.CartBookingDetails) error {
	if booking == nil {
		return nil
	}
	var existing models.CartBookingDetails
	err := r.db.Where("cart_id = ?", booking.CartID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(booking).Error
	}
	if err != nil {
		return err
	}
	booking.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"service_name":   booking.ServiceName,
		"staff_name":     booking.StaffName,
		"starts_at":      booking.StartsAt,
		"customer_name":  booking.CustomerName,
		"customer_email": booking.CustomerEmail,
		"customer_phone": booking.CustomerPhone,
		"notes":          booking.Notes,
	}).Error
}

// Clear 清空购物车：删除项与预约信息并置为 abandoned
func (r *GormCartRepository) Clear(cartID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartBookingDetails{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cartID).
			Update("status", constants.CartStatusAbandoned).Error
	})
}

// TouchCart 刷新购物车更新时间
func (r *GormCartRepository) TouchCart(cartID uint) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}
