package models

import (
	"time"

	"gorm.io/gorm"
)

// ShopOrder 订单表
type ShopOrder struct {
	ID             uint           `gorm:"primarykey" json:"id"`                          // 主键
	BusinessID     uint           `gorm:"index;not null" json:"business_id"`             // 商户ID
	OrderNo        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"` // 订单编号
	CustomerName   string         `gorm:"type:varchar(200)" json:"customer_name"`        // 客户姓名
	CustomerEmail  string         `gorm:"type:varchar(200);index" json:"customer_email"` // 客户邮箱
	CustomerPhone  string         `gorm:"type:varchar(50)" json:"customer_phone"`        // 客户电话
	Status         string         `gorm:"type:varchar(20);index;not null;default:'draft'" json:"status"` // 状态 draft/pending/paid
	SubtotalCents  int64          `gorm:"not null;default:0" json:"subtotal_cents"`      // 小计（分）
	TaxCents       int64          `gorm:"not null;default:0" json:"tax_cents"`           // 税费（分）
	ShippingCents  int64          `gorm:"not null;default:0" json:"shipping_cents"`      // 运费（分）
	TotalCents     int64          `gorm:"not null;default:0" json:"total_cents"`         // 总额（分）
	IdempotencyKey string         `gorm:"type:varchar(100);uniqueIndex" json:"idempotency_key"` // 幂等键
	PaymentID      string         `gorm:"type:varchar(100);index" json:"payment_id"`     // 网关支付ID
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`                          // 支付时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	Items []ShopOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (ShopOrder) TableName() string {
	return "shop_orders"
}
