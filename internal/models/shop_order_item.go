package models

import (
	"time"
)

// ShopOrderItem 订单项（下单后不可变）
type ShopOrderItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`                           // 主键
	OrderID        uint      `gorm:"index;not null" json:"order_id"`                 // 订单ID
	ProductID      string    `gorm:"type:varchar(100);not null" json:"product_id"`   // 商品ID
	ProductName    string    `gorm:"type:varchar(200);not null" json:"product_name"` // 商品名称
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`               // 单价（分）
	Quantity       int       `gorm:"not null" json:"quantity"`                       // 数量
	LineTotalCents int64     `gorm:"not null" json:"line_total_cents"`               // 行小计（分）
	CreatedAt      time.Time `json:"created_at"`                                     // 创建时间
}

// TableName 指定表名
func (ShopOrderItem) TableName() string {
	return "shop_order_items"
}
