package repository

import (
	"encoding/json"

	"gorm.io/gorm"
)

// ReferralRepository 推荐返利数据访问接口。
// 余额与推荐码的计算逻辑在数据库存储过程内，这里只负责调用并透传结果。
type ReferralRepository interface {
	GetBalance(businessID uint, email string) (json.RawMessage, error)
	GetCode(businessID uint, email string) (json.RawMessage, error)
}

// GormReferralRepository GORM 实现
type GormReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository 创建推荐返利仓库
func NewReferralRepository(db *gorm.DB) *GormReferralRepository {
	return &GormReferralRepository{db: db}
}

// GetBalance 调用存储过程查询返利余额
func (r *GormReferralRepository) GetBalance(businessID uint, email string) (json.RawMessage, error) {
	return r.callProc("SELECT get_referral_balance(?, ?)", businessID, email)
}

// GetCode 调用存储过程查询推荐码
func (r *GormReferralRepository) GetCode(businessID uint, email string) (json.RawMessage, error) {
	return r.callProc("SELECT get_referral_code(?, ?)", businessID, email)
}

func (r *GormReferralRepository) callProc(query string, businessID uint, email string) (json.RawMessage, error) {
	var result string
	if err := r.db.Raw(query, businessID, email).Scan(&result).Error; err != nil {
		return nil, err
	}
	if result == "" {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(result), nil
}
