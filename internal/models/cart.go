package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表
type Cart struct {
	ID           uint           `gorm:"primarykey" json:"id"`                              // 主键
	BusinessID   uint           `gorm:"index;not null" json:"business_id"`                 // 商户ID
	SessionToken string         `gorm:"type:varchar(100);index;not null" json:"session_token"` // 会话令牌
	Status       string         `gorm:"type:varchar(20);index;not null;default:'active'" json:"status"` // 状态 active/abandoned
	ExpiresAt    *time.Time     `gorm:"index" json:"expires_at"`                           // 过期时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	Items   []CartItem          `gorm:"foreignKey:CartID" json:"items,omitempty"`   // 购物车项
	Booking *CartBookingDetails `gorm:"foreignKey:CartID" json:"booking,omitempty"` // 预约信息
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
