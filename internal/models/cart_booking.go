package models

import (
	"time"

	"gorm.io/gorm"
)

// CartBookingDetails 购物车预约信息（每车最多一条）
type CartBookingDetails struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	CartID        uint           `gorm:"uniqueIndex;not null" json:"cart_id"`          // 购物车ID
	ServiceName   string         `gorm:"type:varchar(200);not null" json:"service_name"` // 服务名称
	StaffName     string         `gorm:"type:varchar(200)" json:"staff_name"`          // 服务人员
	StartsAt      *time.Time     `json:"starts_at"`                                    // 预约开始时间
	CustomerName  string         `gorm:"type:varchar(200)" json:"customer_name"`       // 客户姓名
	CustomerEmail string         `gorm:"type:varchar(200)" json:"customer_email"`      // 客户邮箱
	CustomerPhone string         `gorm:"type:varchar(50)" json:"customer_phone"`       // 客户电话
	Notes         string         `gorm:"type:text" json:"notes"`                       // 备注
	CreatedAt     time.Time      `json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (CartBookingDetails) TableName() string {
	return "cart_booking_details"
}
