package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
type CartItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                        // 主键
	CartID         uint           `gorm:"index;not null" json:"cart_id"`               // 购物车ID
	ProductID      string         `gorm:"type:varchar(100);not null" json:"product_id"` // 商品ID
	ProductName    string         `gorm:"type:varchar(200);not null" json:"product_name"` // 商品名称
	UnitPriceCents int64          `gorm:"not null" json:"unit_price_cents"`            // 单价（分）
	Quantity       int            `gorm:"not null" json:"quantity"`                    // 数量
	LineTotalCents int64          `gorm:"not null" json:"line_total_cents"`            // 行小计（分），服务端重算
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
