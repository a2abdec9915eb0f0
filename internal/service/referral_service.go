package service

import (
	"encoding/json"
	"strings"

	"github.com/storefront-next/internal/repository"
)

// ReferralService 推荐返利服务。计算逻辑在数据库存储过程内，结果原样透传。
type ReferralService struct {
	referralRepo repository.ReferralRepository
}

// NewReferralService 创建推荐返利服务
func NewReferralService(referralRepo repository.ReferralRepository) *ReferralService {
	return &ReferralService{referralRepo: referralRepo}
}

// GetBalance 查询返利余额
func (s *ReferralService) GetBalance(businessID uint, email string) (json.RawMessage, error) {
	if businessID == 0 {
		return nil, ErrBusinessIDRequired
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.referralRepo.GetBalance(businessID, email)
}

// GetCode 查询推荐码
func (s *ReferralService) GetCode(businessID uint, email string) (json.RawMessage, error) {
	if businessID == 0 {
		return nil, ErrBusinessIDRequired
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.referralRepo.GetCode(businessID, email)
}
