package models

import (
	"time"

	"gorm.io/gorm"
)

// Business 商户表
type Business struct {
	ID               uint           `gorm:"primarykey" json:"id"`                           // 主键
	Name             string         `gorm:"type:varchar(200);not null" json:"name"`         // 商户名称
	Slug             string         `gorm:"type:varchar(100);uniqueIndex" json:"slug"`      // 标识符
	Currency         string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"` // 币种
	SquareLocationID string         `gorm:"type:varchar(100)" json:"square_location_id"`    // Square 门店ID
	NotifyEmail      string         `gorm:"type:varchar(200)" json:"notify_email"`          // 通知邮箱
	MailingGroupID   string         `gorm:"type:varchar(100)" json:"mailing_group_id"`      // 营销名单分组ID
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`         // 是否启用
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Business) TableName() string {
	return "businesses"
}
